/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package strip

import (
	"github.com/nlnwa/warcstream/cmd/warc/internal"
	"github.com/nlnwa/warcstream/pkg/pipeline"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "strip PATH...",
		Short: "Copy records with HTML markup removed from their payloads",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return internal.RunPipeline(cmd, args, pipeline.Config{StripHTML: true})
		},
	}

	internal.AddOutputFlags(cmd, "stripped_")

	return cmd
}
