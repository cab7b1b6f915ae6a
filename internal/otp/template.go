package otp

import (
	"bytes"
	"html/template"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>OTP Verification</title>
	<style>
		body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
		.container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
		.content { text-align: center; color: #555555; }
		.otp-code { display: inline-block; font-size: 24px; color: #333333; background-color: #f0f0f0; padding: 10px 20px; border-radius: 4px; letter-spacing: 2px; margin: 20px 0; }
		.footer { text-align: center; padding-top: 20px; font-size: 12px; color: #999999; }
	</style>
</head>
<body>
	<div class="container">
		<div class="content">
			<h1>OTP Verification</h1>
			<p>Your One-Time Password (OTP) for verification is:</p>
			<div class="otp-code">{{.Code}}</div>
			<p>This OTP is valid for 2 minutes. Please do not share it with anyone.</p>
		</div>
		<div class="footer">
			<p>&copy; Coursify. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`))

func renderOTPEmail(code string) (string, error) {
	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
