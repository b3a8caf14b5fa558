package email

import (
	"bytes"
	"fmt"
	htemplate "html/template"
	ttemplate "text/template"
)

// ExpiryMinutes is shown in the message body and matches the OTP TTL.
const ExpiryMinutes = 5

const otpHTML = `<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Your verification code</h2>
    <p>Use this code to continue. It expires in {{.ExpiryMinutes}} minutes.</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
    <p>If you did not request this code, you can ignore this message.</p>
  </body>
</html>`

const otpText = `Your verification code is {{.Code}}. It expires in {{.ExpiryMinutes}} minutes.

If you did not request this code, you can ignore this message.`

var (
	otpHTMLTmpl = htemplate.Must(htemplate.New("otp_html").Parse(otpHTML))
	otpTextTmpl = ttemplate.Must(ttemplate.New("otp_text").Parse(otpText))
)

type otpVars struct {
	Code          string
	ExpiryMinutes int
}

// RenderOTP renders the html and plain-text bodies for a passcode email.
func RenderOTP(code string) (html, text string, err error) {
	vars := otpVars{Code: code, ExpiryMinutes: ExpiryMinutes}

	var hb bytes.Buffer
	if err := otpHTMLTmpl.Execute(&hb, vars); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	var tb bytes.Buffer
	if err := otpTextTmpl.Execute(&tb, vars); err != nil {
		return "", "", fmt.Errorf("render text: %w", err)
	}
	return hb.String(), tb.String(), nil
}
