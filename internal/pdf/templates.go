package pdf

import (
	"bytes"
	"html/template"
	"time"

	"election_billing/internal/domain"

	"github.com/shopspring/decimal"
)

// The built-in document layouts. Styling is deliberately minimal; these
// pages exist to be printed, not browsed.
var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>ใบเรียกเก็บเงิน {{.BillNumber}}</title>
<style>
body { font-family: "TH Sarabun New", sans-serif; font-size: 16px; margin: 40px; }
h1 { font-size: 22px; text-align: center; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
td { padding: 6px 8px; border: 1px solid #444; }
.label { width: 35%; background: #f0f0f0; }
.amount { font-weight: bold; }
.footer { margin-top: 48px; font-size: 14px; }
</style>
</head>
<body>
<h1>ใบเรียกเก็บเงินค่าใช้จ่ายการเลือกตั้ง</h1>
<table>
<tr><td class="label">เลขที่ใบเรียกเก็บเงิน</td><td>{{.BillNumber}}</td></tr>
<tr><td class="label">ประเภทการเลือกตั้ง</td><td>{{.ElectionType}}</td></tr>
<tr><td class="label">ชื่อการเลือกตั้ง</td><td>{{.ElectionName}}</td></tr>
<tr><td class="label">จำนวนเงิน (บาท)</td><td class="amount">{{.Amount}}</td></tr>
<tr><td class="label">กำหนดชำระ</td><td>{{.DueDate}}</td></tr>
<tr><td class="label">ผู้รับใบเรียกเก็บเงิน</td><td>{{.RecipientName}}</td></tr>
<tr><td class="label">ที่อยู่</td><td>{{.RecipientAddress}}</td></tr>
{{if .Description}}<tr><td class="label">รายละเอียด</td><td>{{.Description}}</td></tr>{{end}}
</table>
<p class="footer">ออกเอกสารเมื่อ {{.IssuedAt}}</p>
</body>
</html>`))

var incomeTmpl = template.Must(template.New("income").Parse(`<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>รายงานรายได้ {{.Username}}</title>
<style>
body { font-family: "TH Sarabun New", sans-serif; font-size: 15px; margin: 40px; }
h1 { font-size: 20px; text-align: center; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { padding: 5px 7px; border: 1px solid #444; text-align: right; }
th { background: #f0f0f0; }
td.period { text-align: left; }
tr.total td { font-weight: bold; }
</style>
</head>
<body>
<h1>รายงานรายได้ — {{.Name}} ({{.Username}})</h1>
<table>
<tr>
<th>งวด</th><th>เงินเดือน</th><th>ค่าตอบแทน</th><th>ล่วงเวลา</th><th>โบนัส</th><th>หักลด</th><th>รวม</th>
</tr>
{{range .Records}}<tr>
<td class="period">{{.Period}}</td><td>{{.BaseSalary}}</td><td>{{.Allowances}}</td><td>{{.Overtime}}</td><td>{{.Bonuses}}</td><td>{{.Deductions}}</td><td>{{.Total}}</td>
</tr>
{{end}}<tr class="total"><td class="period">รวมทั้งสิ้น</td><td></td><td></td><td></td><td></td><td></td><td>{{.GrandTotal}}</td></tr>
</table>
</body>
</html>`))

type invoiceData struct {
	BillNumber       string
	ElectionType     string
	ElectionName     string
	Amount           string
	DueDate          string
	RecipientName    string
	RecipientAddress string
	Description      string
	IssuedAt         string
}

// InvoiceHTML renders the invoice page for a bill
func InvoiceHTML(bill *domain.Bill) (string, error) {
	data := invoiceData{
		BillNumber:       bill.BillNumber,
		ElectionType:     string(bill.ElectionType),
		ElectionName:     bill.ElectionName,
		Amount:           bill.Amount.StringFixed(2),
		DueDate:          bill.DueDate.Format("2006-01-02"),
		RecipientName:    bill.RecipientName,
		RecipientAddress: bill.RecipientAddress,
		Description:      bill.Description,
		IssuedAt:         time.Now().Format("2006-01-02 15:04"),
	}
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type incomeRow struct {
	Period     string
	BaseSalary string
	Allowances string
	Overtime   string
	Bonuses    string
	Deductions string
	Total      string
}

type incomeData struct {
	Username   string
	Name       string
	Records    []incomeRow
	GrandTotal string
}

// IncomeReportHTML renders the income report page for a user's records
func IncomeReportHTML(user *domain.User, records []domain.IncomeRecord) (string, error) {
	data := incomeData{Username: user.Username, Name: user.Name}
	grand := decimal.Zero
	for _, rec := range records {
		data.Records = append(data.Records, incomeRow{
			Period:     rec.PeriodStart.Format("2006-01-02") + " – " + rec.PeriodEnd.Format("2006-01-02"),
			BaseSalary: rec.BaseSalary.StringFixed(2),
			Allowances: rec.Allowances.StringFixed(2),
			Overtime:   rec.Overtime.StringFixed(2),
			Bonuses:    rec.Bonuses.StringFixed(2),
			Deductions: rec.Deductions.StringFixed(2),
			Total:      rec.TotalIncome.StringFixed(2),
		})
		grand = grand.Add(rec.TotalIncome)
	}
	data.GrandTotal = grand.StringFixed(2)
	var buf bytes.Buffer
	if err := incomeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
