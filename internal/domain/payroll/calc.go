package payroll

import (
	"math"

	"staffsync/internal/domain/employees"
)

func Totals(list []employees.Employee) Summary {
	out := Summary{Employees: len(list), Currency: Currency}
	for _, emp := range list {
		out.Total += emp.Salary
	}
	if out.Employees > 0 {
		out.Average = math.Round(out.Total/float64(out.Employees)*100) / 100
	}
	return out
}
