package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Work with Jira issues",
	Long: `Create, inspect, update and transition Jira issues.

Every subcommand targets one instance, selected with --instance or taken
from a statically configured instance.

Examples:
  jsm-agent issue list --jql 'project = PROJ AND status = Open'
  jsm-agent issue create --project PROJ --summary "Printer on fire"
  jsm-agent issue get PROJ-123
  jsm-agent issue transition PROJ-123 31`,
}

// issueInstance selects the target instance for all issue subcommands.
var issueInstance string

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues, optionally filtered by JQL",
	RunE:  runIssueList,
}

var issueListJQL string

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	RunE:  runIssueCreate,
}

// Flags for issue create.
var (
	issueCreateProject     string
	issueCreateSummary     string
	issueCreateDescription string
	issueCreateType        string
)

var issueGetCmd = &cobra.Command{
	Use:   "get [issue-key]",
	Short: "Fetch a single issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueGet,
}

var issueUpdateCmd = &cobra.Command{
	Use:   "update [issue-key]",
	Short: "Update an issue's summary or description",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueUpdate,
}

// Flags for issue update.
var (
	issueUpdateSummary     string
	issueUpdateDescription string
)

var issueDeleteCmd = &cobra.Command{
	Use:   "delete [issue-key]",
	Short: "Delete an issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueDelete,
}

var issueCommentCmd = &cobra.Command{
	Use:   "comment [issue-key] [comment]",
	Short: "Add a comment to an issue",
	Args:  cobra.ExactArgs(2),
	RunE:  runIssueComment,
}

var issueTransitionsCmd = &cobra.Command{
	Use:   "transitions [issue-key]",
	Short: "List the transitions available for an issue",
	RunE:  runIssueTransitions,
	Args:  cobra.ExactArgs(1),
}

var issueTransitionCmd = &cobra.Command{
	Use:   "transition [issue-key] [transition-id]",
	Short: "Move an issue through a transition",
	Args:  cobra.ExactArgs(2),
	RunE:  runIssueTransition,
}

var serverInfoCmd = &cobra.Command{
	Use:   "serverinfo",
	Short: "Fetch server info for an instance",
	Long:  `Fetch server metadata; useful to verify connectivity and credentials.`,
	RunE:  runServerInfo,
}

var serviceDesksCmd = &cobra.Command{
	Use:   "servicedesks",
	Short: "List Jira Service Management projects",
	RunE:  runServiceDesks,
}

func init() {
	issueCmd.PersistentFlags().StringVar(
		&issueInstance, "instance", "", "Base URL of the target Jira instance")

	issueListCmd.Flags().StringVar(
		&issueListJQL, "jql", "", "JQL query to filter issues")

	issueCreateCmd.Flags().StringVar(
		&issueCreateProject, "project", "", "Project key to create the issue in")
	issueCreateCmd.Flags().StringVar(
		&issueCreateSummary, "summary", "", "One-line summary")
	issueCreateCmd.Flags().StringVar(
		&issueCreateDescription, "description", "", "Longer description")
	issueCreateCmd.Flags().StringVar(
		&issueCreateType, "type", "", "Issue type name (defaults to Task)")
	_ = issueCreateCmd.MarkFlagRequired("project")
	_ = issueCreateCmd.MarkFlagRequired("summary")

	issueUpdateCmd.Flags().StringVar(
		&issueUpdateSummary, "summary", "", "New summary")
	issueUpdateCmd.Flags().StringVar(
		&issueUpdateDescription, "description", "", "New description")

	serverInfoCmd.Flags().StringVar(
		&issueInstance, "instance", "", "Base URL of the target Jira instance")
	serviceDesksCmd.Flags().StringVar(
		&issueInstance, "instance", "", "Base URL of the target Jira instance")

	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueGetCmd)
	issueCmd.AddCommand(issueUpdateCmd)
	issueCmd.AddCommand(issueDeleteCmd)
	issueCmd.AddCommand(issueCommentCmd)
	issueCmd.AddCommand(issueTransitionsCmd)
	issueCmd.AddCommand(issueTransitionCmd)

	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(serverInfoCmd)
	rootCmd.AddCommand(serviceDesksCmd)
}

// targetInstance resolves the instance to call: the --instance flag when
// given, otherwise the statically configured instance.
func targetInstance() (string, error) {
	if issueInstance != "" {
		return issueInstance, nil
	}
	if agentConfig != nil && agentConfig.Instance != "" {
		return agentConfig.Instance, nil
	}
	return "", errors.New("no instance selected; pass --instance or configure one")
}

// printOutcome renders an outcome to the command output. Success payloads
// are printed as indented JSON; a pending outcome prints its message; an
// error outcome becomes a command error.
func printOutcome(cmd *cobra.Command, out domain.Outcome) error {
	switch {
	case out.IsError():
		return errors.New(out.Message())
	case out.IsPending():
		cmd.Println(out.Message())
		return nil
	}

	if out.Data() == nil {
		cmd.Println("OK")
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out.Data())
}

func runIssueList(cmd *cobra.Command, _ []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.ListIssues(cmd.Context(), sessionStore, instance, issueListJQL))
}

func runIssueCreate(cmd *cobra.Command, _ []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.CreateIssue(
		cmd.Context(), sessionStore, instance,
		issueCreateProject, issueCreateSummary, issueCreateDescription, issueCreateType))
}

func runIssueGet(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.GetIssue(cmd.Context(), sessionStore, instance, args[0]))
}

func runIssueUpdate(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	fields := driving.IssueFields{
		Summary:     issueUpdateSummary,
		Description: issueUpdateDescription,
	}
	return printOutcome(cmd, issueService.UpdateIssue(cmd.Context(), sessionStore, instance, args[0], fields))
}

func runIssueDelete(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.DeleteIssue(cmd.Context(), sessionStore, instance, args[0]))
}

func runIssueComment(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.AddComment(cmd.Context(), sessionStore, instance, args[0], args[1]))
}

func runIssueTransitions(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.ListTransitions(cmd.Context(), sessionStore, instance, args[0]))
}

func runIssueTransition(cmd *cobra.Command, args []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.PerformTransition(cmd.Context(), sessionStore, instance, args[0], args[1]))
}

func runServerInfo(cmd *cobra.Command, _ []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.ServerInfo(cmd.Context(), sessionStore, instance))
}

func runServiceDesks(cmd *cobra.Command, _ []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}
	instance, err := targetInstance()
	if err != nil {
		return err
	}
	return printOutcome(cmd, issueService.ListServiceDesks(cmd.Context(), sessionStore, instance))
}
