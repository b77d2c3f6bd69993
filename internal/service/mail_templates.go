package service

import (
	"bitwise74/shop-api/internal/model"
	"bytes"
	"html/template"
)

const mailLayout = `<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: {{.Accent}}; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
      .button { display: inline-block; padding: 12px 30px; background: {{.Accent}}; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
      .item { padding: 15px; background: white; margin: 10px 0; border-radius: 5px; }
      .total { font-size: 20px; font-weight: bold; margin-top: 20px; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>{{.Title}}</h1></div>
      <div class="content">{{template "content" .}}</div>
      <div class="footer"><p>You are receiving this email because of activity on your store account.</p></div>
    </div>
  </body>
</html>
`

const verificationContent = `{{define "content"}}
<p>Hi {{.Name}},</p>
<p>Thank you for signing up! Please verify your email address to complete your registration.</p>
<p style="text-align: center;"><a href="{{.URL}}" class="button">Verify Email Address</a></p>
<p>Or copy and paste this link into your browser:</p>
<p style="word-break: break-all;">{{.URL}}</p>
<p>If you didn't create an account, you can safely ignore this email.</p>
{{end}}`

const resetContent = `{{define "content"}}
<p>Hi {{.Name}},</p>
<p>You requested to reset your password. Click the button below to create a new password:</p>
<p style="text-align: center;"><a href="{{.URL}}" class="button">Reset Password</a></p>
<p>Or copy and paste this link into your browser:</p>
<p style="word-break: break-all;">{{.URL}}</p>
<p><strong>This link will expire in 1 hour.</strong></p>
<p>If you didn't request a password reset, you can safely ignore this email.</p>
{{end}}`

const orderContent = `{{define "content"}}
<p>Thank you for your order!</p>
<p><strong>Order ID:</strong> {{.Order.ID}}</p>
<h3>Order Summary:</h3>
{{range .Order.Items}}<div class="item">
  <strong>{{.Name}}</strong><br>
  Quantity: {{.Quantity}} &times; ${{.Price.StringFixed 2}}<br>
  Subtotal: ${{.Subtotal.StringFixed 2}}
</div>
{{end}}<p class="total">Total: ${{.Order.Total.StringFixed 2}}</p>
<p>We'll send you a shipping confirmation when your order ships.</p>
{{end}}`

var (
	verificationTmpl = template.Must(template.Must(template.New("mail").Parse(mailLayout)).Parse(verificationContent))
	resetTmpl        = template.Must(template.Must(template.New("mail").Parse(mailLayout)).Parse(resetContent))
	orderTmpl        = template.Must(template.Must(template.New("mail").Parse(mailLayout)).Parse(orderContent))
)

type mailData struct {
	Title  string
	Accent string
	Name   string
	URL    string
	Order  *model.Order
}

func render(t *template.Template, d mailData) string {
	var buf bytes.Buffer

	// Data is fully controlled by the builders below, execution can't fail
	// unless the templates are broken which the tests catch
	if err := t.Execute(&buf, d); err != nil {
		panic(err)
	}

	return buf.String()
}

func greeting(name string) string {
	if name == "" {
		return "there"
	}

	return name
}

// VerificationEmail builds the body of the account verification email
func VerificationEmail(name, verificationURL string) string {
	return render(verificationTmpl, mailData{
		Title:  "Welcome to Our Store!",
		Accent: "#667eea",
		Name:   greeting(name),
		URL:    verificationURL,
	})
}

// PasswordResetEmail builds the body of the password reset email. The link
// is valid for one hour
func PasswordResetEmail(name, resetURL string) string {
	return render(resetTmpl, mailData{
		Title:  "Password Reset Request",
		Accent: "#f5576c",
		Name:   greeting(name),
		URL:    resetURL,
	})
}

// OrderConfirmationEmail builds an itemized receipt for o
func OrderConfirmationEmail(o *model.Order) string {
	return render(orderTmpl, mailData{
		Title:  "Order Confirmed!",
		Accent: "#43e97b",
		Order:  o,
	})
}
