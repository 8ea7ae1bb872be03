package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aditya-Mahlawat/resume-screener/internal/logger"
	"github.com/Aditya-Mahlawat/resume-screener/internal/report"
	"github.com/Aditya-Mahlawat/resume-screener/internal/screener"
	"github.com/Aditya-Mahlawat/resume-screener/internal/secrets"
	"github.com/Aditya-Mahlawat/resume-screener/internal/submission"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("jd", "t", "", "the job description text")
	rankCmd.Flags().String("jd-file", "", "a file containing the job description text")
	rankCmd.Flags().StringP("resume", "r", "", "path to the resume file (.pdf or .docx)")
}

// rank is the main command for the cli: it gathers the form inputs, runs the
// submission controller once and prints the resulting report.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the resume-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	token, err := resolveToken(config)
	if err != nil {
		zlog.Fatal(
			"loading service token",
			zap.Error(err),
			zap.String("hint", "set SCREENER_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	jd, err := resolveJobDescription(cmd, config)
	if err != nil {
		zlog.Fatal("getting a job description", zap.Error(err))
	}

	resume, err := resolveResume(cmd, config)
	if err != nil {
		zlog.Fatal("loading a resume file", zap.Error(err))
	}

	client := newClient(zlog, config, token)

	resumeName := ""
	if resume != nil {
		resumeName = resume.Name
	}
	zlog = logger.WithSubmissionFields(zlog, client.BaseURL, resumeName)

	controller := submission.NewController(client, zlog)

	if err := controller.Submit(ctx, submission.FormInput{
		JobDescription: jd,
		Resume:         resume,
	}); err != nil {
		zlog.Fatal("submitting", zap.Error(err))
	}

	state := controller.State()
	fmt.Println(report.Render(state))

	if state.Phase() == submission.PhaseFailed {
		os.Exit(1)
	}
}

// newClient builds the screening service client from the config.
func newClient(zlog *zap.Logger, config *Config, token string) *screener.Client {
	client := screener.New(zlog, token)

	if endpoint := strings.TrimRight(viper.GetString("endpoint"), "/"); endpoint != "" {
		client.BaseURL = endpoint
	}

	if config != nil {
		if config.UserAgent != "" {
			client.UserAgent = config.UserAgent
		}
		if config.Timeout > 0 {
			client.HTTPClient.Timeout = config.Timeout
		}
	}

	return client
}

// resolveToken loads the optional service access token. A missing token is
// not an error; the screening service itself runs unauthenticated.
func resolveToken(config *Config) (string, error) {
	tokenFile := ""
	if config != nil {
		tokenFile = strings.TrimSpace(config.TokenFile)
	}

	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile == "" {
		return "", nil
	}

	return secrets.Load("screening service token", tokenFile)
}

// resolveJobDescription takes the job description from the --jd flag, the
// --jd-file flag, the config, or an interactive prompt, in that order.
func resolveJobDescription(cmd *cobra.Command, config *Config) (string, error) {
	if jd := cmd.Flag("jd").Value.String(); strings.TrimSpace(jd) != "" {
		return jd, nil
	}

	jdFile := cmd.Flag("jd-file").Value.String()
	if jdFile == "" && config != nil && config.Rank != nil {
		jdFile = config.Rank.JobDescriptionFile
	}

	if jdFile != "" {
		data, err := os.ReadFile(jdFile)
		if err != nil {
			return "", fmt.Errorf("reading job description file: %w", err)
		}
		return string(data), nil
	}

	prompt := promptui.Prompt{
		Label: "Job description",
	}

	return prompt.Run()
}

// resolveResume takes the resume path from the --resume flag, the config, or
// an interactive prompt, then loads the file into memory.
func resolveResume(cmd *cobra.Command, config *Config) (*screener.ResumeFile, error) {
	path := cmd.Flag("resume").Value.String()

	if path == "" && config != nil && config.Rank != nil {
		path = config.Rank.Resume
	}

	if path == "" {
		prompt := promptui.Prompt{
			Label: "Path to the resume file (.pdf or .docx)",
			Validate: func(input string) error {
				ext := strings.ToLower(filepath.Ext(strings.TrimSpace(input)))
				if ext != ".pdf" && ext != ".docx" {
					return fmt.Errorf("expected a .pdf or .docx file")
				}
				return nil
			},
		}

		var err error
		path, err = prompt.Run()
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(path) == "" {
		// The controller turns a missing file into the validation message.
		return nil, nil
	}

	return screener.LoadResumeFile(path)
}
