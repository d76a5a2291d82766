package mailer

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

const approvalTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:24px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
    <div style="background:#1f3a5f;padding:20px 28px;">
      <h2 style="margin:0;color:#ffffff;">{{.SenderName}}</h2>
    </div>
    <div style="padding:28px;">
      <h3 style="margin-top:0;color:#1f3a5f;">{{.Title}}</h3>
      <p>Hi {{.ApproverName}},</p>
      <p>{{.RequesterName}} has submitted a request that needs your approval.</p>
      <table style="width:100%;border-collapse:collapse;margin:16px 0;">
        {{range .Rows}}
        <tr>
          <td style="padding:8px 12px;border:1px solid #e0e0e0;background:#fafafa;font-weight:bold;width:40%;">{{.Label}}</td>
          <td style="padding:8px 12px;border:1px solid #e0e0e0;">{{.Value}}</td>
        </tr>
        {{end}}
      </table>
      {{if .Note}}
      <div style="background:#fff8e1;border-left:4px solid #f5b942;padding:12px 16px;margin:16px 0;">
        <strong>Note from {{.RequesterName}}:</strong> {{.Note}}
      </div>
      {{end}}
      <div style="text-align:center;margin:28px 0;">
        <a href="{{.ApproveURL}}" style="display:inline-block;background:#2e7d32;color:#ffffff;text-decoration:none;padding:12px 32px;border-radius:4px;margin-right:12px;">Approve</a>
        <a href="{{.RejectURL}}" style="display:inline-block;background:#c62828;color:#ffffff;text-decoration:none;padding:12px 32px;border-radius:4px;">Reject</a>
      </div>
      <p style="color:#888;font-size:12px;">These action links expire in 24 hours and can be used only once.</p>
    </div>
  </div>
</body>
</html>`

var approvalTmpl = template.Must(template.New("approval").Parse(approvalTemplate))

type detailRow struct {
	Label string
	Value string
}

type approvalTemplateData struct {
	SenderName    string
	Title         string
	ApproverName  string
	RequesterName string
	Rows          []detailRow
	Note          string
	ApproveURL    string
	RejectURL     string
}

// detailRows converts the free-form details map into sorted display rows,
// turning snake_case keys into Title Case labels.
func detailRows(details map[string]string) []detailRow {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]detailRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, detailRow{Label: titleCase(k), Value: details[k]})
	}
	return rows
}

// titleCase converts a snake_case key into a Title Case label.
func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// renderApprovalBody renders the branded HTML body for one approval email.
func renderApprovalBody(data approvalTemplateData) (string, error) {
	var sb strings.Builder
	if err := approvalTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render approval email: %w", err)
	}
	return sb.String(), nil
}
