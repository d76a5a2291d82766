package notification

import (
	"fmt"
	"strings"
)

// RecordType enumerates the business record categories the approval router
// knows how to dress up. Anything else takes the fallback route.
type RecordType string

const (
	RecordLeaveRequest        RecordType = "leave_request"
	RecordExpense             RecordType = "expense"
	RecordKickoff             RecordType = "kickoff"
	RecordGoLive              RecordType = "go_live"
	RecordCTC                 RecordType = "ctc"
	RecordBankChange          RecordType = "bank_change"
	RecordSOW                 RecordType = "sow"
	RecordTravelReimbursement RecordType = "travel_reimbursement"
)

// Route carries the per-type presentation config: notification title and
// type, the email subject builder, and the default in-app link.
type Route struct {
	Title            string
	NotificationType string
	Subject          func(details map[string]string) string
	DefaultLink      string
	// Noun is the human phrase used in notification messages,
	// e.g. "leave request" in "... has submitted a leave request".
	Noun string
}

var routes = map[RecordType]Route{
	RecordLeaveRequest: {
		Title:            "Leave Request Approval",
		NotificationType: "leave_request_approval",
		DefaultLink:      "/leaves/approvals",
		Noun:             "leave request",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Leave Request Approval – %s leave, %s day(s)", d["leave_type"], d["days"])
		},
	},
	RecordExpense: {
		Title:            "Expense Approval",
		NotificationType: "expense_approval",
		DefaultLink:      "/expenses/approvals",
		Noun:             "expense",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Expense Approval – ₹%s", d["amount"])
		},
	},
	RecordKickoff: {
		Title:            "Kickoff Request Approval",
		NotificationType: "kickoff_approval",
		DefaultLink:      "/projects/kickoffs",
		Noun:             "kickoff request",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Kickoff Approval Required – %s", d["project_name"])
		},
	},
	RecordGoLive: {
		Title:            "Go-Live Request Approval",
		NotificationType: "go_live_approval",
		DefaultLink:      "/projects/go-live",
		Noun:             "go-live request",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Go-Live Approval Required – %s", d["project_name"])
		},
	},
	RecordCTC: {
		Title:            "CTC Revision Approval",
		NotificationType: "ctc_approval",
		DefaultLink:      "/hr/ctc",
		Noun:             "CTC revision",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("CTC Revision Approval – %s", d["employee_name"])
		},
	},
	RecordBankChange: {
		Title:            "Bank Change Approval",
		NotificationType: "bank_change_approval",
		DefaultLink:      "/hr/bank-changes",
		Noun:             "bank detail change",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Bank Change Approval – %s", d["employee_name"])
		},
	},
	RecordSOW: {
		Title:            "SOW Approval",
		NotificationType: "sow_approval",
		DefaultLink:      "/sows",
		Noun:             "statement of work",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("SOW Approval Required – %s", d["sow_title"])
		},
	},
	RecordTravelReimbursement: {
		Title:            "Travel Reimbursement Approval",
		NotificationType: "travel_reimbursement_approval",
		DefaultLink:      "/expenses/travel",
		Noun:             "travel reimbursement",
		Subject: func(d map[string]string) string {
			return fmt.Sprintf("Travel Reimbursement Approval – ₹%s", d["amount"])
		},
	},
}

// RouteFor resolves the presentation config for a record type. Unknown types
// never fail: they get a title derived from the type string, a generic
// notification type, and the dashboard link.
func RouteFor(recordType string) Route {
	if r, ok := routes[RecordType(recordType)]; ok {
		return r
	}
	title := humanize(recordType)
	noun := strings.ToLower(title)
	return Route{
		Title:            title,
		NotificationType: "approval_request",
		DefaultLink:      "/dashboard",
		Noun:             noun,
		Subject: func(map[string]string) string {
			return title + " Required"
		},
	}
}

// humanize converts a snake_case record type into a Title Case phrase.
func humanize(recordType string) string {
	words := strings.Split(strings.ReplaceAll(recordType, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
