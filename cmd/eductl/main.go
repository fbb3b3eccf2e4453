package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eductl/internal/bootstrap"
	catalogdto "eductl/internal/modules/catalog/dto"
	plugindto "eductl/internal/modules/plugin/dto"
	querydto "eductl/internal/modules/query/dto"
	"eductl/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "eductl",
		Short:         "Admin console for the education platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.eductl)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newLoginCmd(&dataDir))
	root.AddCommand(newLogoutCmd(&dataDir))
	root.AddCommand(newWhoamiCmd(&dataDir))
	root.AddCommand(newLessonCmd(&dataDir))
	root.AddCommand(newExamCmd(&dataDir))
	root.AddCommand(newQuestionCmd(&dataDir))
	root.AddCommand(newAdminCmd(&dataDir))
	root.AddCommand(newUserCmd(&dataDir))
	root.AddCommand(newCacheCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

// loadAuthed is loadApp plus the session check every protected verb runs
// before touching the API.
func loadAuthed(dataDir string) (*bootstrap.App, config.Config, error) {
	app, cfg, err := loadApp(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := app.GuardUC.RequireAuth(context.Background()); err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the eductl terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(dataDir *string) *cobra.Command {
	var email, phone, password string
	login := &cobra.Command{
		Use:   "login --password <password> [--email <email> | --phone <number>]",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(password) == "" {
				return fmt.Errorf("--password is required")
			}
			if strings.TrimSpace(email) == "" && strings.TrimSpace(phone) == "" {
				return fmt.Errorf("one of --email or --phone is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Login(context.Background(), email, phone, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in: %s\n", out.Message)
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&phone, "phone", "", "account phone number")
	login.Flags().StringVar(&password, "password", "", "account password")
	return login
}

func newLogoutCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if out.LoggedIn {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
			}
			return nil
		},
	}
}

func staleNote(cmd *cobra.Command, stale bool) {
	if stale {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(showing cached data; refresh failed or is pending)")
	}
}

func newLessonCmd(dataDir *string) *cobra.Command {
	lesson := &cobra.Command{Use: "lesson", Short: "Lesson catalog commands"}

	lesson.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lessons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListLessons(context.Background())
			if err != nil {
				return err
			}
			if len(out.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no lessons")
				return nil
			}
			for _, l := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f\n", l.ID, l.ClassLevel, l.Title, l.Price)
			}
			staleNote(cmd, out.Stale)
			return nil
		},
	})

	var input catalogdto.LessonInput
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&input.Title, "title", "", "lesson title")
		c.Flags().StringVar(&input.Description, "description", "", "lesson description")
		c.Flags().StringVar(&input.Video, "video", "", "video URL")
		c.Flags().StringVar(&input.ClassLevel, "class-level", "", "class level")
		c.Flags().StringVar(&input.ScheduledDate, "date", "", "scheduled date")
		c.Flags().Float64Var(&input.Price, "price", 0, "price")
	}

	add := &cobra.Command{
		Use:   "add --title <title>",
		Short: "Add a lesson",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.AddLesson(context.Background(), input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "lesson added")
			return nil
		},
	}
	addFlags(add)

	var updateID string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update a lesson",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updateID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.UpdateLesson(context.Background(), updateID, input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "lesson updated")
			return nil
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "lesson id")
	addFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.DeleteLesson(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "lesson deleted")
			return nil
		},
	}

	lesson.AddCommand(add, update, del)
	return lesson
}

func newExamCmd(dataDir *string) *cobra.Command {
	exam := &cobra.Command{Use: "exam", Short: "Exam catalog commands"}

	exam.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListExams(context.Background())
			if err != nil {
				return err
			}
			if len(out.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exams")
				return nil
			}
			for _, e := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%dmin\tpublished=%t\n", e.ID, e.ClassLevel, e.Title, e.Duration, e.IsPublished)
			}
			staleNote(cmd, out.Stale)
			return nil
		},
	})

	var input catalogdto.ExamInput
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&input.Title, "title", "", "exam title")
		c.Flags().StringVar(&input.Description, "description", "", "exam description")
		c.Flags().StringVar(&input.ClassLevel, "class-level", "", "class level")
		c.Flags().IntVar(&input.Duration, "duration", 0, "duration in minutes")
		c.Flags().StringVar(&input.StartDate, "start", "", "start date")
		c.Flags().StringVar(&input.EndDate, "end", "", "end date")
		c.Flags().BoolVar(&input.IsPublished, "published", false, "publish immediately")
	}

	add := &cobra.Command{
		Use:   "add --title <title> --duration <minutes>",
		Short: "Add an exam",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.AddExam(context.Background(), input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "exam added")
			return nil
		},
	}
	addFlags(add)

	var updateID string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update an exam",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updateID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.UpdateExam(context.Background(), updateID, input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "exam updated")
			return nil
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "exam id")
	addFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.DeleteExam(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "exam deleted")
			return nil
		},
	}

	exam.AddCommand(add, update, del)
	return exam
}

func newQuestionCmd(dataDir *string) *cobra.Command {
	question := &cobra.Command{Use: "question", Short: "Exam question commands"}

	question.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListQuestions(context.Background())
			if err != nil {
				return err
			}
			if len(out.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no questions")
				return nil
			}
			for _, q := range out.Items {
				text := q.Text
				if len(text) > 60 {
					text = text[:60] + "..."
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dpt\texam=%s\t%s\n", q.ID, q.Type, q.Points, q.Exam, text)
			}
			staleNote(cmd, out.Stale)
			return nil
		},
	})

	var input catalogdto.QuestionInput
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&input.Text, "text", "", "question text")
		c.Flags().StringVar(&input.Type, "type", "written", "question type: written|mcq")
		c.Flags().StringSliceVar(&input.Options, "options", nil, "answer options (mcq)")
		c.Flags().StringVar(&input.CorrectAnswer, "answer", "", "correct answer")
		c.Flags().StringVar(&input.Exam, "exam-id", "", "exam id the question belongs to")
		c.Flags().IntVar(&input.Points, "points", 1, "points")
	}

	add := &cobra.Command{
		Use:   "add --text <text> --exam-id <id>",
		Short: "Add a question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.AddQuestion(context.Background(), input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "question added")
			return nil
		},
	}
	addFlags(add)

	var updateID string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update a question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updateID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.UpdateQuestion(context.Background(), updateID, input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "question updated")
			return nil
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "question id")
	addFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.DeleteQuestion(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "question deleted")
			return nil
		},
	}

	var pdfPath, examID, questionType string
	var points int
	importCmd := &cobra.Command{
		Use:   "import --pdf <path> --exam-id <id>",
		Short: "Import questions from a PDF exam paper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(pdfPath) == "" || strings.TrimSpace(examID) == "" {
				return fmt.Errorf("--pdf and --exam-id are required")
			}
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ImportQuestions(context.Background(), catalogdto.ImportQuestionsInput{
				PDFPath: pdfPath,
				ExamID:  examID,
				Type:    questionType,
				Points:  points,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions, skipped %d lines\n", out.Imported, out.Skipped)
			return nil
		},
	}
	importCmd.Flags().StringVar(&pdfPath, "pdf", "", "path to PDF exam paper")
	importCmd.Flags().StringVar(&examID, "exam-id", "", "exam id to attach questions to")
	importCmd.Flags().StringVar(&questionType, "type", "written", "question type for imported questions")
	importCmd.Flags().IntVar(&points, "points", 1, "points per imported question")

	question.AddCommand(add, update, del, importCmd)
	return question
}

func newAdminCmd(dataDir *string) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Admin account commands"}

	admin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListAdmins(context.Background())
			if err != nil {
				return err
			}
			printAccounts(cmd, out.Items)
			staleNote(cmd, out.Stale)
			return nil
		},
	})

	var input catalogdto.CreateAdminInput
	create := &cobra.Command{
		Use:   "create --name <name> --email <email> --password <password>",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			if input.ConfirmPassword == "" {
				input.ConfirmPassword = input.Password
			}
			if err := app.CatalogCLI.CreateAdmin(context.Background(), input); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s\n", input.Email)
			return nil
		},
	}
	create.Flags().StringVar(&input.FullName, "name", "", "full name")
	create.Flags().StringVar(&input.Email, "email", "", "email")
	create.Flags().StringVar(&input.PhoneNumber, "phone", "", "phone number")
	create.Flags().StringVar(&input.Password, "password", "", "password")
	create.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "confirmation (defaults to --password)")
	admin.AddCommand(create)
	return admin
}

func newUserCmd(dataDir *string) *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "User account commands"}
	user.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.ListUsers(context.Background())
			if err != nil {
				return err
			}
			printAccounts(cmd, out.Items)
			staleNote(cmd, out.Stale)
			return nil
		},
	})
	return user
}

func printAccounts(cmd *cobra.Command, accounts []catalogdto.AccountOutput) {
	if len(accounts) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no accounts")
		return
	}
	for _, a := range accounts {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tverified=%t\n", a.ID, a.Role, a.FullName, a.Email, a.IsVerified)
	}
}

func newCacheCmd(dataDir *string) *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Local cache maintenance"}
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cached entries and snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.QueryUC.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})
	return cache
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Exporter plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var formatsPluginName string
	formatsCmd := &cobra.Command{
		Use:   "formats --plugin <name>",
		Short: "List export formats a plugin offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(formatsPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			formats, err := app.PluginCLI.ListFormats(context.Background(), formatsPluginName)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no formats")
				return nil
			}
			for _, f := range formats {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s ext=%s timeout_ms=%d title=%q\n", f.ID, f.Extension, f.TimeoutMS, f.Title)
			}
			return nil
		},
	}
	formatsCmd.Flags().StringVar(&formatsPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(formatsCmd)

	var exportPluginName, exportFormatID, exportEntity, exportOutput string
	exportCmd := &cobra.Command{
		Use:   "export --plugin <name> --format <id> --entity <type>",
		Short: "Export an entity listing through a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportPluginName) == "" || strings.TrimSpace(exportFormatID) == "" {
				return fmt.Errorf("--plugin and --format are required")
			}
			path, tag, err := entityEndpoint(exportEntity)
			if err != nil {
				return err
			}
			app, cfg, err := loadAuthed(*dataDir)
			if err != nil {
				return err
			}
			result, err := app.QueryUC.Query(context.Background(), querydto.QueryInput{
				Path:       path,
				EntityType: tag,
			})
			if err != nil {
				return err
			}
			items, err := json.Marshal(result.Items)
			if err != nil {
				return fmt.Errorf("encode items: %w", err)
			}
			out, err := app.PluginCLI.Export(context.Background(), plugindto.ExportInput{
				PluginName: exportPluginName,
				FormatID:   exportFormatID,
				EntityType: tag,
				ItemsJSON:  string(items),
				OutputPath: exportOutput,
				BaseURL:    cfg.BaseURL,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", out.Records, out.OutputPath)
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportPluginName, "plugin", "", "plugin name")
	exportCmd.Flags().StringVar(&exportFormatID, "format", "", "format id (see plugin formats)")
	exportCmd.Flags().StringVar(&exportEntity, "entity", "lessons", "entity type: lessons|exams|questions|admins|users")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path (defaults to <entity>.<ext>)")
	plugin.AddCommand(exportCmd)

	return plugin
}

func entityEndpoint(entity string) (path, tag string, err error) {
	switch entity {
	case "lessons":
		return "/lesson", "lessons", nil
	case "exams":
		return "/exam", "exams", nil
	case "questions":
		return "/question", "questions", nil
	case "admins":
		return "/admin/all-admin", "admins", nil
	case "users":
		return "/admin/all-user", "users", nil
	default:
		return "", "", fmt.Errorf("unknown entity %q: want lessons|exams|questions|admins|users", entity)
	}
}
