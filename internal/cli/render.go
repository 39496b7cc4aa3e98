package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shodgson/mdlist/dom"
	"github.com/shodgson/mdlist/list"
	"github.com/shodgson/mdlist/markdown"
	"github.com/shodgson/mdlist/model"
)

func newRenderCmd() *cobra.Command {
	var (
		fromJSON bool
		format   string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown (or a JSON document) as HTML",
		Long: "Read markdown from a file or stdin and write the rendered HTML.\n" +
			"With --json the input is a document tree as written by --format json.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in, name = f, args[0]
			}

			doc, err := readDocument(in, fromJSON)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.log.Debug("document read", "source", name, "children", doc.ChildCount())

			var result string
			switch strings.ToLower(format) {
			case "html", "":
				s := dom.NewSerializer(
					dom.WithKeyAttr(a.cfg.Render.KeyAttr),
					dom.WithRoleAttr(a.cfg.Render.RoleAttr),
					dom.WithIndentUnit(list.Pixels(a.cfg.Render.IndentUnit)),
					dom.WithLogger(a.log),
				)
				if result, err = s.RenderString(doc); err != nil {
					return fmt.Errorf("render html: %w", err)
				}
			case "markdown", "md":
				result = markdown.Restore(doc)
			case "json":
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				result = string(data)
			default:
				return fmt.Errorf("unknown format %q (want html, markdown or json)", format)
			}
			if !strings.HasSuffix(result, "\n") {
				result += "\n"
			}

			if out == "" || out == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), result)
				return err
			}
			if err := os.WriteFile(out, []byte(result), 0o644); err != nil {
				return err
			}
			a.log.Info("wrote output", "path", out, "format", format)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromJSON, "json", false, "read a JSON document tree instead of markdown")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format (html|markdown|json)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default stdout)")
	cmd.Flags().Int("indent-unit", 0, "left padding in pixels per list level (overrides render.indent_unit)")
	cmd.Flags().String("key-attr", "", "attribute receiving list child keys (overrides render.key_attr)")
	cmd.Flags().String("role-attr", "", "attribute receiving list roles (overrides render.role_attr)")
	return cmd
}

func readDocument(r io.Reader, fromJSON bool) (*model.Node, error) {
	if !fromJSON {
		return markdown.Parse(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return model.NodeFromJSON(data)
}
