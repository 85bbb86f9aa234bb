package email

import (
	"bytes"
	"html/template"
)

const TaskAssignedSubject = "New Task Assigned to You"

type TaskAssigned struct {
	Name            string
	TaskTitle       string
	TaskDescription string
	DashboardURL    string
}

var taskAssignedTmpl = template.Must(template.New("task-assigned").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #0f172a; color: #e2e8f0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background-color: #1e293b; border-radius: 8px; padding: 24px;">
    <h1 style="color: #64b5f6; margin-top: 0;">New Task Assigned</h1>
    <p>Hi {{.Name}},</p>
    <p>A new task has been assigned to you by your HR manager. Here are the details:</p>
    <div style="background-color: #0f172a; border-left: 4px solid #64b5f6; padding: 12px 16px; margin: 16px 0;">
      <h2 style="margin: 0 0 8px 0; font-size: 18px;">{{.TaskTitle}}</h2>
      <p style="margin: 0;">{{.TaskDescription}}</p>
    </div>
    <p>Please log in to your dashboard to view the full details and update the status.</p>
    <p style="text-align: center; margin: 24px 0;">
      <a href="{{.DashboardURL}}" style="background-color: #64b5f6; color: #0f172a; padding: 12px 24px; border-radius: 6px; text-decoration: none; font-weight: bold;">Go to Dashboard</a>
    </p>
    <p style="font-size: 12px; color: #94a3b8;">This is an automated notification from StaffSync Pro.</p>
  </div>
</body>
</html>
`))

func RenderTaskAssigned(data TaskAssigned) (string, error) {
	var buf bytes.Buffer
	if err := taskAssignedTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
