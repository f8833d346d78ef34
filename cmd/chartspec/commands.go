package main

import (
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartspec/internal/loader"
	"github.com/goliatone/go-chartspec/internal/prompt"
	"github.com/goliatone/go-chartspec/pkg/describe"
	"github.com/goliatone/go-chartspec/pkg/openapi"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/traces/mesh3d"
	"github.com/goliatone/go-chartspec/pkg/validation"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

func (a *app) describeCommand() *cobra.Command {
	var (
		asHTML bool
		from   string
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print attribute documentation",
		Long: `Print the mesh3d.lighting attribute documentation, or with --from the
documentation of every object in an exported OpenAPI document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			objs := []schema.Object{mesh3d.LightingSchema}
			if from != "" {
				parsed, err := a.parseObjects(cmd, from)
				if err != nil {
					return err
				}
				objs = parsed
			}
			for _, obj := range objs {
				if asHTML {
					if _, err := fmt.Fprintln(a.stdout, describe.HTML(obj)); err != nil {
						return err
					}
					continue
				}
				if len(objs) > 1 {
					fmt.Fprintf(a.stdout, "%s\n", obj.Path())
				}
				if _, err := fmt.Fprint(a.stdout, describe.Text(obj)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render a sanitized HTML definition list")
	cmd.Flags().StringVar(&from, "from", "", "describe the objects of an exported OpenAPI document")
	return cmd
}

func (a *app) parseObjects(cmd *cobra.Command, location string) ([]schema.Object, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	doc, err := loader.New(loader.Options{}).Load(cmd.Context(), src)
	if err != nil {
		return nil, err
	}
	objs, err := openapi.ParseObjects(cmd.Context(), doc.Raw())
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("chartspec: %s has no chartspec objects", doc.Location())
	}
	a.logger.Debugw("objects parsed", "location", doc.Location(), "count", len(objs))
	return objs, nil
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Export the attribute schema as an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := a.extensionPolicy()
			if err != nil {
				return err
			}
			payload, err := openapi.MarshalDocument(docTitle, docVersion, policy, mesh3d.LightingSchema)
			if err != nil {
				return err
			}
			a.logger.Debugw("schema exported", "policy", string(policy), "bytes", len(payload))
			_, err = fmt.Fprintln(a.stdout, string(payload))
			return err
		},
	}
}

func (a *app) validateCommand() *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "validate <file|url>...",
		Short: "Validate config documents and report every issue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := a.extensionPolicy()
			if err != nil {
				return err
			}
			sources := loader.New(loader.Options{
				AllowHTTP:      a.httpFetch,
				RequestTimeout: a.httpTimeout,
			})
			opts := validation.Options{Policy: policy}
			if against != "" {
				if opts.Contract, err = a.loadContract(cmd, sources, against); err != nil {
					return err
				}
			}

			failed := false
			for _, arg := range args {
				src, err := schema.ParseSource(arg)
				if err != nil {
					return err
				}
				doc, err := sources.Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				result := validation.ValidateDocument(cmd.Context(), doc.Source(), doc.Raw(), opts)
				a.logger.Debugw("document validated", "location", doc.Location(), "valid", result.Valid, "issues", len(result.Issues))
				if result.Valid {
					fmt.Fprintf(a.stdout, "%s: ok\n", doc.Location())
					continue
				}
				failed = true
				for _, issue := range result.Issues {
					if issue.Path != "" {
						fmt.Fprintf(a.stdout, "%s: %s: %s\n", doc.Location(), issue.Path, issue.Message)
					} else {
						fmt.Fprintf(a.stdout, "%s: %s\n", doc.Location(), issue.Message)
					}
				}
			}
			if failed {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.httpFetch, "http", false, "allow http(s) sources")
	cmd.Flags().DurationVar(&a.httpTimeout, "timeout", 0, "HTTP request timeout")
	cmd.Flags().StringVar(&against, "against", "", "also check values against a previously exported OpenAPI document")
	return cmd
}

func (a *app) loadContract(cmd *cobra.Command, sources *loader.Loader, location string) (*openapi3.Schema, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	doc, err := sources.Load(cmd.Context(), src)
	if err != nil {
		return nil, err
	}
	contract, err := openapi.Component(cmd.Context(), doc.Raw(), mesh3d.LightingSchema.Path())
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("contract loaded", "location", doc.Location(), "path", mesh3d.LightingSchema.Path())
	return contract, nil
}

func (a *app) promptCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill mesh3d.lighting interactively and print the config document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver()
			}
			return a.runPrompt(cmd, driver, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	return cmd
}

func (a *app) runPrompt(cmd *cobra.Command, driver prompt.Driver, output string) error {
	values, err := prompt.Collect(cmd.Context(), driver, mesh3d.LightingSchema)
	if err != nil {
		return err
	}

	policy, err := a.extensionPolicy()
	if err != nil {
		return err
	}
	var opts []mesh3d.Option
	if policy != "" {
		opts = append(opts, mesh3d.WithExtensionPolicy(policy))
	}
	lighting, err := mesh3d.NewLightingFromMap(values, opts...)
	if err != nil {
		return err
	}
	a.logger.Debugw("lighting collected", "lighting", lighting.String())

	doc := map[string]any{
		"mesh3d": map[string]any{
			"lighting": lighting.Values(),
		},
	}
	if policy != "" && policy != validators.ExtensionReject {
		doc["extensions"] = string(policy)
	}
	payload, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("chartspec: encode yaml: %w", err)
	}

	if output == "" {
		_, err = a.stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("chartspec: write %s: %w", output, err)
	}
	fmt.Fprintf(a.stdout, "Config written to %s\n", output)
	return nil
}
