// Package goquery implements the heuristic HTML/documentation validator.
package goquery

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/qagent"
	"golang.org/x/net/html"
)

var (
	emailID        = regexp.MustCompile(`(?i)email`)
	nameID         = regexp.MustCompile(`(?i)name|fullname`)
	discountID     = regexp.MustCompile(`(?i)discount|coupon`)
	discountErrID  = regexp.MustCompile(`(?i)discount.*error|discount.*msg`)
	applyText      = regexp.MustCompile(`(?i)apply`)
	paymentName    = regexp.MustCompile(`(?i)payment`)
	shippingName   = regexp.MustCompile(`(?i)shipping`)
	commonButtons  = []string{"apply", "submit", "pay"}
	fieldInputTypes = []string{"text", "email"}
)

// Ensure Validator implements qagent.Validator at compile time.
var _ qagent.Validator = (*Validator)(nil)

// page is the input shared by every rule.
type page struct {
	doc *goquery.Document

	// docs is the lowercased documentation text. Coverage checks are plain
	// substring matches against it.
	docs string
}

// rule inspects a page and returns its findings in discovery order.
type rule func(p *page) []qagent.Finding

// Validator runs a fixed battery of rules over an HTML page.
type Validator struct {
	rules []rule
}

// NewValidator creates a Validator with the standard rules.
func NewValidator() *Validator {
	return &Validator{
		rules: []rule{
			checkFormValidation,
			checkErrorElements,
			checkDiscountCode,
			checkPaymentDocs,
			checkShippingDocs,
			checkButtonCoverage,
		},
	}
}

// Validate returns the findings of every rule in rule order.
func (v *Validator) Validate(rawHTML, docs string) []qagent.Finding {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	p := &page{doc: doc, docs: strings.ToLower(docs)}

	var findings []qagent.Finding
	for _, r := range v.rules {
		findings = append(findings, r(p)...)
	}
	return findings
}

// mentions reports whether the documentation contains any of terms.
func (p *page) mentions(terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(p.docs, term) {
			return true
		}
	}
	return false
}

// inputWithID returns the inputs whose id matches re.
func (p *page) inputWithID(re *regexp.Regexp) *goquery.Selection {
	return p.doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return re.MatchString(s.AttrOr("id", ""))
	})
}

// hasID reports whether any element's id satisfies match.
func (p *page) hasID(match func(id string) bool) bool {
	return p.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s.AttrOr("id", ""))
	}).Length() > 0
}

// radiosNamed returns the radio inputs whose name matches re.
func (p *page) radiosNamed(re *regexp.Regexp) *goquery.Selection {
	return p.doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasType(s, "radio") && re.MatchString(s.AttrOr("name", ""))
	})
}

func checkFormValidation(p *page) []qagent.Finding {
	var findings []qagent.Finding

	email := p.doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasType(s, "email") || emailID.MatchString(s.AttrOr("id", ""))
	})
	if email.Length() > 0 && !p.mentions("email", "validation") {
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryFormValidation,
			Issue:      "Email field requires validation, but no validation rule found in documents.",
			Suggestion: "Add email validation rules to UI/UX documentation (e.g., format requirements, error messages).",
			Severity:   qagent.SeverityWarning,
		})
	}

	if p.doc.Find("input[required]").Length() == 0 && p.inputWithID(nameID).Length() > 0 {
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryFormValidation,
			Issue:      "Name field is not marked as required in HTML.",
			Suggestion: "Add 'required' attribute to name input field for better validation.",
			Severity:   qagent.SeverityInfo,
		})
	}

	return findings
}

func checkErrorElements(p *page) []qagent.Finding {
	var findings []qagent.Finding

	if p.inputWithID(discountID).Length() > 0 && !p.hasID(discountErrID.MatchString) {
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryErrorHandling,
			Issue:      "The HTML does not contain an element for discount error message.",
			Suggestion: "Add an error message element (e.g., <span id='discount-error' class='error'></span>) near the discount input field.",
			Severity:   qagent.SeverityWarning,
		})
	}

	p.doc.Find("input").Each(func(_ int, s *goquery.Selection) {
		if !hasType(s, fieldInputTypes...) {
			return
		}
		id := s.AttrOr("id", "")
		if id == "" {
			return
		}
		errorID := "error-" + id
		if p.hasID(func(v string) bool { return v == errorID }) {
			return
		}
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryErrorHandling,
			Issue:      fmt.Sprintf("Missing error message element for '%s' field.", id),
			Suggestion: fmt.Sprintf("Add <span id='%s' class='error'></span> below the %s input for validation feedback.", errorID, id),
			Severity:   qagent.SeverityInfo,
		})
	})

	return findings
}

func checkDiscountCode(p *page) []qagent.Finding {
	if p.inputWithID(discountID).Length() == 0 {
		return nil
	}

	var findings []qagent.Finding

	apply := p.doc.Find("button").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return applyText.MatchString(labelText(s))
	})
	if apply.Length() == 0 {
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryDiscountCode,
			Issue:      "Discount input found but no 'Apply' button detected.",
			Suggestion: "Add a button with text 'Apply' to trigger discount code validation.",
			Severity:   qagent.SeverityError,
		})
	}

	if !p.mentions("discount", "coupon") {
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryDocumentation,
			Issue:      "Discount code feature exists in HTML but not documented.",
			Suggestion: "Add discount code specifications to product_specs.md (e.g., valid codes, discount percentages).",
			Severity:   qagent.SeverityWarning,
		})
	}

	return findings
}

func checkPaymentDocs(p *page) []qagent.Finding {
	radios := p.radiosNamed(paymentName)
	if radios.Length() == 0 || p.mentions("payment") {
		return nil
	}

	methods := radios.Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("value", "")
	})
	return []qagent.Finding{{
		Category:   qagent.CategoryDocumentation,
		Issue:      "Payment methods found in HTML but not documented.",
		Suggestion: "Add payment method specifications to documentation. Found methods: " + strings.Join(methods, ", "),
		Severity:   qagent.SeverityWarning,
	}}
}

func checkShippingDocs(p *page) []qagent.Finding {
	if p.radiosNamed(shippingName).Length() == 0 || p.mentions("shipping") {
		return nil
	}
	return []qagent.Finding{{
		Category:   qagent.CategoryDocumentation,
		Issue:      "Shipping options found in HTML but not documented.",
		Suggestion: "Add shipping rules and costs to product_specs.md.",
		Severity:   qagent.SeverityWarning,
	}}
}

func checkButtonCoverage(p *page) []qagent.Finding {
	var findings []qagent.Finding
	p.doc.Find("button").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		if text == "" || p.mentions(lower) || slices.Contains(commonButtons, lower) {
			return
		}
		findings = append(findings, qagent.Finding{
			Category:   qagent.CategoryDocumentation,
			Issue:      fmt.Sprintf("Button '%s' found but not documented.", text),
			Suggestion: fmt.Sprintf("Document the purpose and behavior of the '%s' button.", text),
			Severity:   qagent.SeverityInfo,
		})
	})
	return findings
}

// hasType reports whether the element's type attribute is one of types,
// ignoring case.
func hasType(s *goquery.Selection, types ...string) bool {
	typ := s.AttrOr("type", "")
	return slices.ContainsFunc(types, func(t string) bool {
		return strings.EqualFold(typ, t)
	})
}

// labelText returns the text of the first element. An element whose only
// child is another element yields that child's label, so
// <button><span>Apply</span></button> reads as "Apply". Otherwise the
// element's direct text nodes are joined.
func labelText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return nodeLabel(s.Get(0))
}

func nodeLabel(n *html.Node) string {
	if c := n.FirstChild; c != nil && c.NextSibling == nil && c.Type == html.ElementNode {
		return nodeLabel(c)
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
