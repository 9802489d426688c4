package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/threadnet-protocol/threadnet-go/pkg/discovery"
	"github.com/threadnet-protocol/threadnet-go/pkg/log"
)

// Audit command and flags
var (
	auditCategory  string
	auditAction    string
	auditDatasetID string
	auditRouterKey string
)

var auditCmd = &cobra.Command{
	Use:   "audit <file>",
	Short: "View a CBOR audit log",
	Long: `View the events recorded in a CBOR audit log, one line per event,
oldest first. Filters narrow the output to a subsystem, an operation, one
dataset or one border router.`,
	Example: `  # View all events
  threadnetd audit /var/lib/threadnet/audit.log

  # Only dataset mutations
  threadnetd audit --category dataset /var/lib/threadnet/audit.log

  # Everything that happened to one border router
  threadnetd audit --router-key e60fc7c186212ce5 /var/lib/threadnet/audit.log`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditCategory, "category", "", "Filter by category: dataset, discovery")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "Filter by action, e.g. added, deleted, discovered")
	auditCmd.Flags().StringVar(&auditDatasetID, "dataset-id", "", "Filter by dataset id")
	auditCmd.Flags().StringVar(&auditRouterKey, "router-key", "", "Filter by border router fingerprint")
}

func runAudit(cmd *cobra.Command, args []string) error {
	var filter log.Filter

	if auditCategory != "" {
		c, err := parseCategoryFlag(auditCategory)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	if auditAction != "" {
		a, err := parseActionFlag(auditAction)
		if err != nil {
			return err
		}
		filter.Action = &a
	}
	filter.DatasetID = auditDatasetID
	if auditRouterKey != "" {
		if !discovery.ValidateKey(auditRouterKey) {
			return fmt.Errorf("invalid router key %q: expected %d hex chars", auditRouterKey, discovery.KeyLength)
		}
		filter.RouterKey = auditRouterKey
	}

	return viewAuditLog(args[0], filter, cmd.OutOrStdout())
}

// viewAuditLog streams the matching events of one audit log to w.
func viewAuditLog(path string, filter log.Filter, w io.Writer) error {
	r, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read audit log: %w", err)
		}
		printEvent(w, event)
	}
}

func printEvent(w io.Writer, e log.Event) {
	fmt.Fprintf(w, "%s %-9s %-14s", e.Timestamp.Format(time.RFC3339), e.Category, e.Action)
	if e.DatasetID != "" {
		fmt.Fprintf(w, " dataset=%s", e.DatasetID)
	}
	if e.Source != "" {
		fmt.Fprintf(w, " source=%s", e.Source)
	}
	if e.RouterKey != "" {
		fmt.Fprintf(w, " router=%s", e.RouterKey)
	}
	if e.Service != "" {
		fmt.Fprintf(w, " service=%q", e.Service)
	}
	if e.Network != "" {
		fmt.Fprintf(w, " network=%q", e.Network)
	}
	if e.Error != "" {
		fmt.Fprintf(w, " error=%q", e.Error)
	}
	fmt.Fprintln(w)
}

func parseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "dataset":
		return log.CategoryDataset, nil
	case "discovery":
		return log.CategoryDiscovery, nil
	}
	return 0, fmt.Errorf("unknown category %q (dataset, discovery)", s)
}

func parseActionFlag(s string) (log.Action, error) {
	switch strings.ToLower(s) {
	case "added":
		return log.ActionAdded, nil
	case "deleted":
		return log.ActionDeleted, nil
	case "preferred":
		return log.ActionPreferred, nil
	case "discovered":
		return log.ActionDiscovered, nil
	case "removed":
		return log.ActionRemoved, nil
	case "resolve_failed":
		return log.ActionResolveFailed, nil
	case "subscribed":
		return log.ActionSubscribed, nil
	case "unsubscribed":
		return log.ActionUnsubscribed, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
