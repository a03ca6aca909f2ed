package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/photoindex/internal/app"
	"github.com/kailas-cloud/photoindex/internal/transport/dto"
)

// --- init-index ---

var initIndexCmd = &cobra.Command{
	Use:   "init-index",
	Short: "Create the photo index if it does not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := bootstrap(cmd.Context(), app.Parts{})
		if err != nil {
			return err
		}
		defer shutdown(c)

		if err := c.WaitForIndex(cmd.Context()); err != nil {
			return err
		}
		created, err := c.Photos.EnsureIndex(cmd.Context())
		if err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), indexStatus(c.Photos.Index(), created))
		return nil
	},
}

// --- index ---

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index one stored object",
	Long: `Index one stored object, exactly as a storage-write event would.

Examples:
  photoindex index --bucket photos-b2 --key my+dog.jpg`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		bucket, _ := cmd.Flags().GetString("bucket")
		key, _ := cmd.Flags().GetString("key")
		if bucket == "" || key == "" {
			return fmt.Errorf("--bucket and --key are required")
		}

		c, err := bootstrap(cmd.Context(), app.Parts{Ingest: true})
		if err != nil {
			return err
		}
		defer shutdown(c)

		contentType, err := c.Ingest.Ingest(cmd.Context(), bucket, key)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.IngestResponse{ContentType: contentType})
	},
}

func init() {
	indexCmd.Flags().String("bucket", "", "bucket holding the object")
	indexCmd.Flags().String("key", "", "object key, URL-encoded as in storage events")
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search photos with a natural-language query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootstrap(cmd.Context(), app.Parts{Search: true})
		if err != nil {
			return err
		}
		defer shutdown(c)

		res, err := c.Search.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.FromResult(&res))
	},
}

func indexStatus(name string, created bool) string {
	if created {
		return fmt.Sprintf("index %s created", name)
	}
	return fmt.Sprintf("index %s already present", name)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
