package payroll

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"staffsync/internal/domain/employees"
)

type EmployeeSource interface {
	List(ctx context.Context) ([]employees.Employee, error)
	Get(ctx context.Context, id string) (employees.Employee, error)
}

type Service struct {
	employees EmployeeSource
	Location  *time.Location
	Now       func() time.Time
}

func NewService(source EmployeeSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{employees: source, Location: loc, Now: time.Now}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	list, err := s.employees.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Totals(list), nil
}

// Statement renders the current month's salary statement for one employee.
func (s *Service) Statement(ctx context.Context, employeeID string) ([]byte, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	now := s.Now().In(s.Location)
	return RenderStatement(StatementData{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Status:     emp.Status,
		Salary:     emp.Salary,
		Currency:   Currency,
		IssuedAt:   now,
		Period:     time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.Location),
	})
}

func RenderStatement(data StatementData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary Statement", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", data.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", data.Period.Format("January 2006")))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Monthly salary: %.2f %s", data.Salary, data.Currency))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Issued %s", data.IssuedAt.Format(statementDateLayout)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatementRender, err)
	}
	return buf.Bytes(), nil
}
