package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/johnquangdev/meeting-summarizer/internal/client"
	emailuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/email"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "summarizer",
		Short:         "Generate, edit, store and email AI meeting summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine
			_ = godotenv.Load()
			return nil
		},
	}

	root.PersistentFlags().String("api-base", client.DefaultBaseURL, "base URL of the summarizer API")
	root.PersistentFlags().Duration("timeout", 0, "per-request timeout, 0 waits indefinitely")
	root.PersistentFlags().Bool("json", false, "print raw JSON responses")
	for _, name := range []string{"api-base", "timeout", "json"} {
		if err := v.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	v.SetEnvPrefix("summarizer")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newGenerateCmd(v),
		newSaveCmd(v),
		newFetchCmd(v),
		newSendCmd(v),
		newPingCmd(v),
	)
	return root
}

func newApp(v *viper.Viper) (*client.App, *client.HTTPClient) {
	api := client.NewHTTPClient(v.GetString("api-base"), nil)
	return client.NewApp(api), api
}

func requestContext(v *viper.Viper) (context.Context, context.CancelFunc) {
	if d := v.GetDuration("timeout"); d > 0 {
		return context.WithTimeout(context.Background(), d)
	}
	return context.WithCancel(context.Background())
}

// readText reads path, or stdin when path is "-"
func readText(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// bannerError prefers the banner the state machine raised over err
func bannerError(app *client.App, err error) error {
	if b, ok := app.State().VisibleBanner(time.Now()); ok && b.Kind == client.BannerError {
		return fmt.Errorf("%s (%w)", b.Text, err)
	}
	return err
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var file, prompt string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Summarize a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _ := newApp(v)
			text, err := readText(cmd, file)
			if err != nil {
				return err
			}
			app.SetTranscript(text)
			app.SetPrompt(prompt)

			ctx, cancel := requestContext(v)
			defer cancel()
			resp, err := app.Generate(ctx)
			if err != nil {
				return bannerError(app, err)
			}

			if v.GetBool("json") {
				return printJSON(cmd, resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "summaryId: %s\n\n%s\n", resp.SummaryID, resp.Generated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "transcript file, - for stdin")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", client.DefaultPrompt, "summarization instruction, empty for the structured default")
	return cmd
}

func newSaveCmd(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save <summary-id>",
		Short: "Store an edited summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _ := newApp(v)
			ctx, cancel := requestContext(v)
			defer cancel()

			if _, err := app.Fetch(ctx, args[0]); err != nil {
				return err
			}
			text, err := readText(cmd, file)
			if err != nil {
				return err
			}
			app.Edit()
			if err := app.SetText(text); err != nil {
				return err
			}

			doc, err := app.Save(ctx)
			if err != nil {
				return bannerError(app, err)
			}
			if v.GetBool("json") {
				return printJSON(cmd, doc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s at %s\n", doc.ID, doc.UpdatedAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "edited summary file, - for stdin")
	return cmd
}

func newFetchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <summary-id>",
		Short: "Print a stored summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api := newApp(v)
			ctx, cancel := requestContext(v)
			defer cancel()

			doc, err := api.Fetch(ctx, args[0])
			if err != nil {
				return err
			}
			if v.GetBool("json") {
				return printJSON(cmd, doc)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Edited)
			return nil
		},
	}
}

func newSendCmd(v *viper.Viper) *cobra.Command {
	var (
		to      []string
		subject string
		file    string
		id      string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _ := newApp(v)
			ctx, cancel := requestContext(v)
			defer cancel()

			switch {
			case id != "":
				if _, err := app.Fetch(ctx, id); err != nil {
					return err
				}
			default:
				text, err := readText(cmd, file)
				if err != nil {
					return err
				}
				app.Update(func(s client.State) client.State {
					s.Text = text
					s.Phase = client.PhaseGenerated
					return s
				})
			}

			app.OpenEmail()
			app.SetSubject(subject)
			for _, addr := range emailuse.NormalizeRecipients(to) {
				app.Type(addr + " ")
				if st := app.State(); st.Input != "" {
					return fmt.Errorf("invalid email format: %s", st.Input)
				}
			}

			info, err := app.Send(ctx)
			if err != nil {
				return bannerError(app, err)
			}
			if v.GetBool("json") {
				return printJSON(cmd, info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", info.MessageID, strings.Join(info.Accepted, ", "))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&to, "to", "t", nil, "recipient address, repeatable or comma-separated")
	cmd.Flags().StringVarP(&subject, "subject", "s", client.DefaultSubject, "email subject")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "body file, - for stdin; ignored with --id")
	cmd.Flags().StringVar(&id, "id", "", "send the stored edit of this summary")
	return cmd
}

func newPingCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the API is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api := newApp(v)
			text, err := api.Ping(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", api.BaseURL(), text)
			return nil
		},
	}
}
