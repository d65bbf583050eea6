// Package form holds the declarative validation ruleset for the invoice
// entry form and the persistence of its in-progress draft.
package form

import (
	"strconv"
	"strings"
	"time"
)

// Values is the flat map of form field values keyed by field name.
type Values map[string]string

// Invoice form field names, matching the persisted draft layout.
const (
	FieldVendor             = "vendor"
	FieldPONumber           = "poNumber"
	FieldInvoiceNumber      = "invoiceNumber"
	FieldInvoiceDate        = "invoiceDate"
	FieldTotalAmount        = "totalAmount"
	FieldPaymentTerms       = "paymentTerms"
	FieldInvoiceDueDate     = "invoiceDueDate"
	FieldGLPostDate         = "glPostDate"
	FieldInvoiceDescription = "invoiceDescription"
	FieldLineAmount         = "lineAmount"
	FieldDepartment         = "department"
	FieldAccount            = "account"
	FieldLocation           = "location"
	FieldExpenseDescription = "expenseDescription"
)

// Fields lists the invoice form fields in display order.
var Fields = []string{
	FieldVendor,
	FieldPONumber,
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldTotalAmount,
	FieldPaymentTerms,
	FieldInvoiceDueDate,
	FieldGLPostDate,
	FieldInvoiceDescription,
	FieldLineAmount,
	FieldDepartment,
	FieldAccount,
	FieldLocation,
	FieldExpenseDescription,
}

// Defaults returns an empty value set covering every form field.
func Defaults() Values {
	values := make(Values, len(Fields))
	for _, f := range Fields {
		values[f] = ""
	}

	return values
}

// Rule checks one constraint against a field value. It returns a
// human-readable message on failure and "" on success. Cross-field rules
// read the whole value set; date rules compare against now.
type Rule func(value string, values Values, now time.Time) string

type fieldRules struct {
	field string
	rules []Rule
}

// invoiceRules is the whole-form ruleset. Rules run in order and the first
// failing rule per field wins.
var invoiceRules = []fieldRules{
	{FieldVendor, []Rule{
		required("Vendor is required"),
	}},
	{FieldPONumber, []Rule{
		required("Purchase Order Number is required"),
	}},
	{FieldInvoiceNumber, []Rule{
		required("Invoice Number is required"),
		minLen(3, "Invoice Number must be at least 3 characters"),
	}},
	{FieldInvoiceDate, []Rule{
		required("Invoice Date is required"),
		notFuture("Invoice Date cannot be in the future"),
	}},
	{FieldTotalAmount, []Rule{
		required("Total Amount is required"),
		numeric("Total Amount must be a number"),
		positive("Total Amount must be positive"),
	}},
	{FieldPaymentTerms, []Rule{
		required("Payment Terms is required"),
	}},
	{FieldInvoiceDueDate, []Rule{
		required("Invoice Due Date is required"),
		onOrAfter(FieldInvoiceDate, "Invoice Due Date must be after or equal to Invoice Date"),
	}},
	{FieldGLPostDate, []Rule{
		required("GL Post Date is required"),
		onOrAfter(FieldInvoiceDate, "GL Post Date must be after or equal to Invoice Date"),
	}},
	{FieldInvoiceDescription, []Rule{
		required("Invoice Description is required"),
		minLen(5, "Invoice Description must be at least 5 characters"),
	}},
	{FieldLineAmount, []Rule{
		required("Line Amount is required"),
		numeric("Line Amount must be a number"),
		positive("Line Amount must be positive"),
		noMoreThan(FieldTotalAmount, "Line Amount cannot exceed Total Amount"),
	}},
	{FieldDepartment, []Rule{
		required("Department is required"),
	}},
	{FieldAccount, []Rule{
		required("Account is required"),
	}},
	{FieldLocation, []Rule{
		required("Location is required"),
	}},
	{FieldExpenseDescription, []Rule{
		required("Expense Description is required"),
		minLen(5, "Expense Description must be at least 5 characters"),
	}},
}

// Validate runs the whole-form pass and returns one message per failing
// field. An empty result means the form may be submitted.
func Validate(values Values) map[string]string {
	return ValidateAt(values, time.Now())
}

func ValidateAt(values Values, now time.Time) map[string]string {
	errs := make(map[string]string)

	for _, fr := range invoiceRules {
		value := strings.TrimSpace(values[fr.field])

		for _, rule := range fr.rules {
			if msg := rule(value, values, now); msg != "" {
				errs[fr.field] = msg
				break
			}
		}
	}

	return errs
}

// ValidateLogin checks the login form. Any non-empty pair that meets the
// length floors is accepted; there is no identity provider behind it.
func ValidateLogin(username, password string) map[string]string {
	errs := make(map[string]string)

	switch {
	case strings.TrimSpace(username) == "":
		errs["username"] = "Username is required"
	case len(strings.TrimSpace(username)) < 3:
		errs["username"] = "Username must be at least 3 characters"
	}

	switch {
	case password == "":
		errs["password"] = "Password is required"
	case len(password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}

	return errs
}

func required(msg string) Rule {
	return func(value string, _ Values, _ time.Time) string {
		if value == "" {
			return msg
		}

		return ""
	}
}

func minLen(n int, msg string) Rule {
	return func(value string, _ Values, _ time.Time) string {
		if len(value) < n {
			return msg
		}

		return ""
	}
}

func numeric(msg string) Rule {
	return func(value string, _ Values, _ time.Time) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return msg
		}

		return ""
	}
}

func positive(msg string) Rule {
	return func(value string, _ Values, _ time.Time) string {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 {
			return msg
		}

		return ""
	}
}

// notFuture parses the value as a calendar date and rejects dates after
// now. A date of today is midnight local time, so it always passes.
func notFuture(msg string) Rule {
	return func(value string, _ Values, now time.Time) string {
		d, ok := parseDate(value)
		if !ok {
			return msg
		}

		if d.After(now) {
			return msg
		}

		return ""
	}
}

// onOrAfter compares the value against another date field. The check is
// skipped when the referenced field is absent or unparsable; its own rules
// report that.
func onOrAfter(other, msg string) Rule {
	return func(value string, values Values, _ time.Time) string {
		ref, ok := parseDate(strings.TrimSpace(values[other]))
		if !ok {
			return ""
		}

		d, ok := parseDate(value)
		if !ok {
			return msg
		}

		if d.Before(ref) {
			return msg
		}

		return ""
	}
}

// noMoreThan caps the value by another numeric field. Skipped when the
// referenced field is absent or non-numeric.
func noMoreThan(other, msg string) Rule {
	return func(value string, values Values, _ time.Time) string {
		limit, err := strconv.ParseFloat(strings.TrimSpace(values[other]), 64)
		if err != nil {
			return ""
		}

		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return ""
		}

		if n > limit {
			return msg
		}

		return ""
	}
}

func parseDate(value string) (time.Time, bool) {
	d, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return d, true
}
