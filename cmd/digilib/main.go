package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"digilib-go/internal/app"
	"digilib-go/internal/config"
	"digilib-go/internal/library"
	"digilib-go/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a LibraryApp. The caller must defer
// app.Close(). operation identifies the CLI command being run (e.g.
// "CatalogAdd", "Open").
func newApp(operation string) (*app.LibraryApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewLibraryApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// parseID converts a CLI material id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid material id %q", arg)
	}
	return id, nil
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

// categoryLabel returns the section heading for a category, pluralized the
// way the dashboards label them.
func categoryLabel(c model.MaterialType) string {
	if c == model.TypeEducationalResource {
		return "Educational Resources"
	}
	return string(c) + "s"
}

var rootCmd = &cobra.Command{
	Use:   "digilib",
	Short: "Local digital library manager",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new library ID
		libraryID := uuid.New().String()

		cfg := config.NewConfig(libraryID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Library ID: %s\n", libraryID)
		fmt.Printf("Base Dir:   %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Library ID: %s\n", cfg.LibraryID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Store:      %s (%s)\n", cfg.Store.Type, cfg.Store.DataDir)
		return nil
	},
}

// session commands
var loginCmd = &cobra.Command{
	Use:   "login USERNAME",
	Short: "Start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, _ := cmd.Flags().GetBool("admin")

		a, err := newApp("Login")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Login(args[0], admin); err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		role := "student"
		if admin {
			role = "admin"
		}
		fmt.Printf("Logged in as %s (%s)\n", args[0], role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("WhoAmI")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.WhoAmI()
		if err != nil {
			return err
		}
		if u == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		role := u.Role
		if role == "" {
			role = "student"
		}
		fmt.Printf("%s (%s)\n", u.Username, role)
		return nil
	},
}

// catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the material catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("search")

		a, err := newApp("Catalog")
		if err != nil {
			return err
		}
		defer a.Close()

		groups, err := a.BrowseCatalog(query)
		if err != nil {
			return err
		}

		accessed := map[int64]bool{}
		if ids, err := a.AccessedMaterials(); err == nil {
			for _, id := range ids {
				accessed[id] = true
			}
		}

		empty := true
		for _, category := range model.Categories() {
			materials := groups[category]
			fmt.Printf("%s\n", categoryLabel(category))
			if len(materials) == 0 {
				fmt.Printf("  No %ss found.\n\n", strings.ToLower(string(category)))
				continue
			}
			empty = false
			for _, m := range materials {
				marker := " "
				if accessed[m.ID] {
					marker = "*"
				}
				link, _ := m.ParsedLink()
				kind := "no link"
				switch link.Kind {
				case model.LinkURL:
					kind = "link"
				case model.LinkEmbedded:
					kind = "file"
				}
				fmt.Printf("%s %-15d %-50s %-6s feedback:%d\n", marker, m.ID, m.Title, kind, len(m.Feedbacks))
				fmt.Printf("  %s\n", m.Description)
			}
			fmt.Println()
		}
		if empty && query != "" {
			fmt.Println("No materials match your search.")
		}
		return nil
	},
}

func materialFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Material title")
	cmd.Flags().String("description", "", "Material description")
	cmd.Flags().String("type", "", "Category: Educational Resource, Textbook, Study Guide, Research Paper")
	cmd.Flags().String("link", "", "External URL")
	cmd.Flags().String("file", "", "File to upload instead of a URL")
}

func materialFlagValues(cmd *cobra.Command) (title, description, typeName, link, file string) {
	title, _ = cmd.Flags().GetString("title")
	description, _ = cmd.Flags().GetString("description")
	typeName, _ = cmd.Flags().GetString("type")
	link, _ = cmd.Flags().GetString("link")
	file, _ = cmd.Flags().GetString("file")
	return
}

var catalogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a material (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CatalogAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.AddMaterial(materialFlagValues(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Added material %d: %s\n", m.ID, m.Title)
		return nil
	},
}

var catalogEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a material (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("CatalogEdit")
		if err != nil {
			return err
		}
		defer a.Close()

		title, description, typeName, link, file := materialFlagValues(cmd)
		m, err := a.EditMaterial(id, title, description, typeName, link, file)
		if err != nil {
			return err
		}
		fmt.Printf("Updated material %d: %s\n", m.ID, m.Title)
		return nil
	},
}

var catalogRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a material (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("CatalogRemove")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveMaterial(id); err != nil {
			return err
		}
		fmt.Printf("Removed material %d\n", id)
		return nil
	},
}

// open command
var openCmd = &cobra.Command{
	Use:   "open ID",
	Short: "Access a material (records the access)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("Open")
		if err != nil {
			return err
		}
		defer a.Close()

		action, err := a.Open(id)
		if err != nil {
			return err
		}

		if action.Logged {
			fmt.Println("Access recorded.")
		}

		switch action.Kind {
		case library.OpenBrowse:
			fmt.Printf("Open in your browser: %s\n", action.URL)
		case library.OpenDownload:
			dest := filepath.Join(outDir, action.FileName)
			if err := os.WriteFile(dest, action.Data, 0644); err != nil {
				return fmt.Errorf("saving file: %w", err)
			}
			fmt.Printf("Saved %s (%s, %d bytes)\n", dest, action.MediaType, len(action.Data))
		default:
			fmt.Println("Material has no link.")
		}
		return nil
	},
}

// accessed command
var accessedCmd = &cobra.Command{
	Use:   "accessed",
	Short: "List materials you have accessed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Accessed")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.AccessedLog()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No materials accessed yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-15d %-40s %s\n", e.MaterialID, e.MaterialTitle, e.Time)
		}
		return nil
	},
}

// audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the access ledger (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Audit")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Audit()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No accesses recorded.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%-40s %-20s %s\n", e.MaterialTitle, e.Username, e.Time)
		}
		return nil
	},
}

// feedback commands
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Read and submit material feedback",
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add ID TEXT...",
	Short: "Submit feedback on a material",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("FeedbackAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		text := strings.Join(args[1:], " ")
		if _, err := a.SubmitFeedback(id, text); err != nil {
			if errors.Is(err, library.ErrEmptyFeedback) {
				return fmt.Errorf("feedback text is empty")
			}
			return err
		}
		fmt.Println("Thank you for your feedback!")
		return nil
	},
}

var feedbackListCmd = &cobra.Command{
	Use:   "list ID",
	Short: "List feedback on a material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("FeedbackList")
		if err != nil {
			return err
		}
		defer a.Close()

		title, feedbacks, err := a.ListFeedback(id)
		if err != nil {
			return err
		}

		fmt.Printf("Feedback for: %s\n", title)
		if len(feedbacks) == 0 {
			fmt.Println("No feedback provided yet.")
			return nil
		}
		for _, fb := range feedbacks {
			author := fb.Username
			if author == "" {
				author = "Anonymous"
			}
			fmt.Printf("%s: %s (%s)\n", author, fb.Text, fb.Date)
		}
		return nil
	},
}

// export/import commands
var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the library to an archive (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		var passphrase string
		if encrypt {
			passphrase, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			confirm, err := readPassphrase("Confirm passphrase: ")
			if err != nil {
				return err
			}
			if passphrase != confirm {
				return fmt.Errorf("passphrases do not match")
			}
			if passphrase == "" {
				return fmt.Errorf("empty passphrase")
			}
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating archive file: %w", err)
		}
		defer f.Close()

		snap, err := a.Export(f, passphrase)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d material(s) and %d access log(s) to %s\n",
			len(snap.Materials), len(snap.AccessLogs), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore the library from an archive (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading archive file: %w", err)
		}

		var passphrase string
		if bytes.HasPrefix(data, []byte("age-encryption.org/v1")) {
			passphrase, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
		}

		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.Import(bytes.NewReader(data), passphrase)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d material(s) and %d access log(s) from snapshot %s\n",
			len(snap.Materials), len(snap.AccessLogs), snap.ID)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// catalog subcommands
	catalogCmd.Flags().StringP("search", "s", "", "Filter by title, description or type")
	materialFlags(catalogAddCmd)
	materialFlags(catalogEditCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogEditCmd)
	catalogCmd.AddCommand(catalogRmCmd)

	// feedback subcommands
	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	loginCmd.Flags().Bool("admin", false, "Log in with the admin role")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(catalogCmd)
	openCmd.Flags().StringP("out", "o", ".", "Directory to save downloaded files into")
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(accessedCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(feedbackCmd)
	exportCmd.Flags().Bool("encrypt", false, "Encrypt the archive with a passphrase")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
