package payroll

const Currency = "INR"

const statementDateLayout = "2 January 2006"
