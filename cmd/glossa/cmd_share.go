package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"glossa/internal/share"
)

var exportOut string

// exportCmd writes a saved language to a JSON file.
var exportCmd = &cobra.Command{
	Use:   "export [name-or-id]",
	Short: "Export a language to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := resolveLanguage(st, args[0])
		if err != nil {
			return err
		}
		data, err := share.ExportJSON(c)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = strings.ToLower(c.Name) + ".json"
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		logInfo("exported language", zap.String("language", c.Name), zap.String("file", out))
		fmt.Printf("Exported %s to %s\n", c.Name, out)
		return nil
	},
}

// importCmd loads a language from a JSON file into the collection.
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a language from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		c, err := share.ImportJSON(data)
		if err != nil {
			logError("import failed", zap.String("file", args[0]), zap.Error(err))
			return err
		}
		logInfo("imported language", zap.String("language", c.Name), zap.String("file", args[0]))
		// Imported records get a fresh identity so they never collide
		// with a record the sender also shared with someone else.
		c.ID = ""

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Save(c); err != nil {
			return err
		}
		fmt.Printf("Imported %s (%s)\n", c.Name, shortID(c.ID))
		return nil
	},
}

// shareCmd groups the token subcommands.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share a language via URL token",
}

// shareEncodeCmd prints a share link for a saved language.
var shareEncodeCmd = &cobra.Command{
	Use:   "encode [name-or-id]",
	Short: "Print a share link for a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := resolveLanguage(st, args[0])
		if err != nil {
			return err
		}
		link, err := share.ShareURL(cfg.Share.BaseURL, c)
		if err != nil {
			return err
		}
		logInfo("encoded share link", zap.String("language", c.Name), zap.Int("link_len", len(link)))
		fmt.Println(link)
		return nil
	},
}

// shareDecodeCmd imports a language from a share link or raw token.
var shareDecodeCmd = &cobra.Command{
	Use:   "decode [link-or-token]",
	Short: "Import a language from a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]
		c, err := share.FromURL(arg)
		if err != nil {
			// Not a URL; try the bare token.
			c, err = share.DecodeToken(arg)
			if err != nil {
				logError("share decode failed", zap.Error(err))
				return err
			}
		}
		logInfo("decoded shared language", zap.String("language", c.Name))
		c.ID = ""

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Save(c); err != nil {
			return err
		}
		fmt.Printf("Imported %s (%s)\n", c.Name, shortID(c.ID))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: <name>.json)")
}
