// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/epexport/epexport/pkg/log"
	"github.com/epexport/epexport/pkg/prompt"
	"github.com/epexport/epexport/pkg/schemafile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	optionNameFormat             = "format"
	optionNameOutput             = "output"
	optionNameAsyncAPIVersion    = "async-api-version"
	optionNameIncludedExtensions = "included-extensions"
	optionNameShared             = "shared"
	optionNameApplicationDomain  = "application-domain"
	optionNameSchemaSource       = "schema-source"
	optionNameApplication        = "application"
	optionNameApplicationVersion = "application-version"
	optionNameEventAPI           = "event-api"
	optionNameEventAPIVersion    = "event-api-version"
)

// errNothingToExport ends an export early without failing the command.
var errNothingToExport = errors.New("nothing to export")

func (c *command) initExportCmd() {
	var client *eventportal.Client

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an AsyncAPI document of an application or event API version",
		Long: `Export an AsyncAPI document of an application or event API version.

Every selection that is not given as an option is asked for interactively.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := c.config.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			token, err := c.resolveToken(cmd)
			if err != nil {
				return err
			}
			client, err = eventportal.New(eventportal.Options{
				BaseURL: c.config.GetString(optionNameAPIURL),
				Token:   token,
				Logger:  c.sdkLogger,
			})
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e := &exporter{
				logger:   c.logger.Child(log.WithLabel("export")),
				client:   client,
				prompter: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
				writer:   schemafile.NewWriter(c.fs, c.logger.Child(log.WithLabel("output"))),
				options: exportOptions{
					output: c.config.GetString(optionNameOutput),
					asyncAPI: eventportal.AsyncAPIOptions{
						Format:             eventportal.Format(c.config.GetString(optionNameFormat)),
						AsyncAPIVersion:    c.config.GetString(optionNameAsyncAPIVersion),
						IncludedExtensions: c.config.GetString(optionNameIncludedExtensions),
					},
					shared:             c.config.GetBool(optionNameShared),
					domainID:           c.config.GetString(optionNameApplicationDomain),
					source:             eventportal.SchemaSource(c.config.GetString(optionNameSchemaSource)),
					applicationID:      c.config.GetString(optionNameApplication),
					applicationVersion: c.config.GetString(optionNameApplicationVersion),
					eventAPIID:         c.config.GetString(optionNameEventAPI),
					eventAPIVersion:    c.config.GetString(optionNameEventAPIVersion),
				},
			}
			return e.run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String(optionNameFormat, "", "output format, one of json or yaml")
	flags.StringP(optionNameOutput, "o", "", "path of the exported document")
	flags.String(optionNameAsyncAPIVersion, "", "AsyncAPI specification version, one of 2.0.0, 2.2.0 or 2.5.0")
	flags.String(optionNameIncludedExtensions, "", "extensions to include, one of all, parent, version or none")
	flags.Bool(optionNameShared, false, "list only shared event APIs")
	flags.String(optionNameApplicationDomain, "", "application domain id")
	flags.String(optionNameSchemaSource, "", "export from application or event_api")
	flags.String(optionNameApplication, "", "application id")
	flags.String(optionNameApplicationVersion, "", "application version id")
	flags.String(optionNameEventAPI, "", "event API id")
	flags.String(optionNameEventAPIVersion, "", "event API version id")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "out" {
			name = optionNameOutput
		}
		return pflag.NormalizedName(name)
	})
	_ = cmd.MarkFlagRequired(optionNameFormat)
	_ = cmd.MarkFlagRequired(optionNameOutput)

	c.root.AddCommand(cmd)
}

type exportOptions struct {
	output             string
	asyncAPI           eventportal.AsyncAPIOptions
	shared             bool
	domainID           string
	source             eventportal.SchemaSource
	applicationID      string
	applicationVersion string
	eventAPIID         string
	eventAPIVersion    string
}

// exporter walks the selection steps of a single export.
type exporter struct {
	logger   *log.Logger
	client   *eventportal.Client
	prompter prompt.Prompter
	writer   *schemafile.Writer
	options  exportOptions
}

func (e *exporter) run(ctx context.Context) error {
	err := e.export(ctx)
	switch {
	case errors.Is(err, prompt.ErrCanceled):
		e.logger.Warn("You can't exit the selection")
		return nil
	case errors.Is(err, errNothingToExport):
		return nil
	}
	return err
}

func (e *exporter) export(ctx context.Context) error {
	if err := e.options.asyncAPI.Validate(); err != nil {
		return err
	}

	domainID, err := e.selectDomain(ctx)
	if err != nil {
		return err
	}
	source, err := e.selectSource()
	if err != nil {
		return err
	}

	var payload []byte
	switch source {
	case eventportal.SourceApplication:
		payload, err = e.applicationDocument(ctx, domainID)
	case eventportal.SourceEventAPI:
		payload, err = e.eventAPIDocument(ctx, domainID)
	}
	if err != nil {
		return err
	}

	content, err := schemafile.Encode(e.options.asyncAPI.Format, payload)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	path, err := filepath.Abs(e.options.output)
	if err != nil {
		return fmt.Errorf("output path: %w", err)
	}
	return e.writer.Write(path, content)
}

func (e *exporter) selectDomain(ctx context.Context) (string, error) {
	if id := e.options.domainID; id != "" {
		e.logger.Debug("Using application domain provided by option: " + id)
		return id, nil
	}
	domains, err := e.client.ApplicationDomains(ctx)
	if err != nil {
		return "", fmt.Errorf("list application domains: %w", err)
	}
	e.logger.Debug(fmt.Sprintf("Retrieved %d application domains from Event Portal", len(domains)))
	if len(domains) == 0 {
		e.logger.Info("No application domains found")
		return "", errNothingToExport
	}
	choices := make([]prompt.Choice, 0, len(domains))
	for _, d := range domains {
		choices = append(choices, prompt.Choice{Title: d.Name, Value: d.ID, Description: d.Description})
	}
	choice, err := e.prompter.Autocomplete("Select an application domain", choices)
	if err != nil {
		return "", err
	}
	e.logger.Debug("Selected application domain: "+choice.Title, choice.Value)
	return choice.Value, nil
}

func (e *exporter) selectSource() (eventportal.SchemaSource, error) {
	if s := e.options.source; s != "" {
		if err := eventportal.OneOf("schema source", string(s), eventportal.SchemaSources); err != nil {
			return "", err
		}
		return s, nil
	}
	choice, err := e.prompter.Select("Where do you want to export the AsyncAPI document from?", []prompt.Choice{
		{Title: "Application", Value: string(eventportal.SourceApplication)},
		{Title: "Event API", Value: string(eventportal.SourceEventAPI)},
	})
	if err != nil {
		return "", err
	}
	return eventportal.SchemaSource(choice.Value), nil
}

func (e *exporter) applicationDocument(ctx context.Context, domainID string) ([]byte, error) {
	appID := e.options.applicationID
	if appID == "" {
		apps, err := e.client.Applications(ctx, domainID)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		if len(apps) == 0 {
			e.logger.Info("No applications found in application domain " + domainID)
			return nil, errNothingToExport
		}
		choices := make([]prompt.Choice, 0, len(apps))
		for _, a := range apps {
			choices = append(choices, prompt.Choice{Title: a.Name, Value: a.ID})
		}
		choice, err := e.prompter.Select("Select an application", choices)
		if err != nil {
			return nil, err
		}
		appID = choice.Value
	}

	versionID := e.options.applicationVersion
	if versionID == "" {
		versions, err := e.client.ApplicationVersions(ctx, appID)
		if err != nil {
			return nil, fmt.Errorf("list application versions: %w", err)
		}
		if len(versions) == 0 {
			e.logger.Info("No versions found for application " + appID)
			return nil, errNothingToExport
		}
		choices := make([]prompt.Choice, 0, len(versions))
		for _, v := range versions {
			choices = append(choices, prompt.Choice{Title: v.Version, Value: v.ID, Description: v.Description})
		}
		choice, err := e.prompter.Select("Select an application version to export", choices)
		if err != nil {
			return nil, err
		}
		versionID = choice.Value
	}

	e.logger.Debug("Exporting application version " + versionID)
	payload, err := e.client.ApplicationVersionAsyncAPI(ctx, versionID, e.options.asyncAPI)
	if err != nil {
		return nil, fmt.Errorf("download application version %s: %w", versionID, err)
	}
	return payload, nil
}

func (e *exporter) eventAPIDocument(ctx context.Context, domainID string) ([]byte, error) {
	apiID := e.options.eventAPIID
	if apiID == "" {
		apis, err := e.client.EventAPIs(ctx, domainID, e.options.shared)
		if err != nil {
			return nil, fmt.Errorf("list event apis: %w", err)
		}
		if len(apis) == 0 {
			e.logger.Info("No event APIs found in application domain " + domainID)
			return nil, errNothingToExport
		}
		choices := make([]prompt.Choice, 0, len(apis))
		for _, a := range apis {
			choices = append(choices, prompt.Choice{Title: a.Name, Value: a.ID})
		}
		choice, err := e.prompter.Select("Select an event API", choices)
		if err != nil {
			return nil, err
		}
		apiID = choice.Value
	}

	versionID := e.options.eventAPIVersion
	if versionID == "" {
		versions, err := e.client.EventAPIVersions(ctx, apiID)
		if err != nil {
			return nil, fmt.Errorf("list event api versions: %w", err)
		}
		if len(versions) == 0 {
			e.logger.Info("No versions found for event API " + apiID)
			return nil, errNothingToExport
		}
		choices := make([]prompt.Choice, 0, len(versions))
		for _, v := range versions {
			choices = append(choices, prompt.Choice{Title: v.Version, Value: v.ID, Description: v.Description})
		}
		choice, err := e.prompter.Select("Select an event API version to export", choices)
		if err != nil {
			return nil, err
		}
		versionID = choice.Value
	}

	e.logger.Debug("Exporting event API version " + versionID)
	payload, err := e.client.EventAPIVersionAsyncAPI(ctx, versionID, e.options.asyncAPI)
	if err != nil {
		return nil, fmt.Errorf("download event api version %s: %w", versionID, err)
	}
	return payload, nil
}
