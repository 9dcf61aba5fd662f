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

package internal

import (
	"context"
	"os"
	"os/signal"

	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/warcstream/pkg/output"
	"github.com/nlnwa/warcstream/pkg/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AddOutputFlags adds the flags controlling where and how records are written.
func AddOutputFlags(cmd *cobra.Command, defaultPrefix string) {
	cmd.Flags().String("out-dir", "", "directory for output files (default is next to each input file)")
	cmd.Flags().String("prefix", defaultPrefix, "prefix added to input file names to form output file names")
	cmd.Flags().Bool("drop-headers", false, "write only record payloads")
}

// RunPipeline copies records from paths to per file outputs configured by the output flags of cmd.
// Flags are read through viper, so they may also come from the config file or WARC_ environment variables.
func RunPipeline(cmd *cobra.Command, paths []string, cfg pipeline.Config) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	w, err := output.New(
		output.WithDir(viper.GetString("out-dir")),
		output.WithPrefix(viper.GetString("prefix")),
		output.WithDropHeaders(viper.GetBool("drop-headers")),
	)
	if err != nil {
		return err
	}
	s, err := warcstream.OpenPaths(paths)
	if err != nil {
		_ = w.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Output = w
	res, err := pipeline.Run(ctx, s, cfg)
	if closeErr := s.Close(); err == nil {
		err = closeErr
	}
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	for _, f := range w.Files() {
		log.Infof("wrote %s", f)
	}
	if err != nil {
		return err
	}
	cmd.Printf("%d of %d records written\n", res.Written, res.Read)
	return nil
}
