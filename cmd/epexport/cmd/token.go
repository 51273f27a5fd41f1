// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epexport/epexport/pkg/schemafile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errNoToken = errors.New("no Solace Cloud token found")

// resolveToken returns the Solace Cloud token. A secret file takes
// precedence over the command line option, which in turn takes precedence
// over the environment and the config file.
func (c *command) resolveToken(cmd *cobra.Command) (string, error) {
	token := strings.TrimSpace(c.config.GetString(optionNameToken))
	if token != "" {
		if cmd.Flags().Changed(optionNameToken) {
			c.logger.Debug("Using Solace Cloud Token from command line option")
		} else {
			c.logger.Debug("Using Solace Cloud Token from environment")
		}
	}

	if file := c.config.GetString(optionNameSecretFile); file != "" {
		path, err := filepath.Abs(file)
		if err != nil {
			return "", fmt.Errorf("secret file %s: %w", file, err)
		}
		ok, err := schemafile.Exists(c.fs, path)
		if err != nil {
			return "", fmt.Errorf("secret file %s: %w", file, err)
		}
		if !ok {
			c.logger.Error("Secret file not found: " + file)
			return "", fmt.Errorf("secret file %s: %w", file, os.ErrNotExist)
		}
		b, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return "", fmt.Errorf("read secret file %s: %w", file, err)
		}
		token = strings.TrimSpace(string(b))
		c.logger.Debug("Using Solace Cloud Token from secret file: " + file)
	}

	if token == "" {
		c.logger.Error("No Solace Cloud Token found")
		return "", errNoToken
	}
	return token, nil
}
