package email

import (
	"bytes"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<p>Hi {{.Name}},</p>
<p>Welcome to OFX. Your account is ready.</p>
<p>Share your referral link to start earning: <a href="{{.ReferralLink}}">{{.ReferralLink}}</a></p>`))

var withdrawalTmpl = template.Must(template.New("withdrawal").Parse(`<p>A new withdrawal request is waiting for review.</p>
<ul>
<li>User: {{.Name}} ({{.Email}})</li>
<li>Amount: {{.Amount}}</li>
</ul>
<p><a href="{{.AdminURL}}">Open the admin panel</a></p>`))

// WelcomeMessage builds the signup welcome email.
func WelcomeMessage(to, name, referralLink string) (SendRequest, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct{ Name, ReferralLink string }{name, referralLink})
	if err != nil {
		return SendRequest{}, err
	}
	return SendRequest{
		To:      []string{to},
		Subject: "Welcome to OFX",
		HTML:    buf.String(),
		Text:    "Hi " + name + ",\n\nWelcome to OFX. Your referral link: " + referralLink + "\n",
	}, nil
}

// WithdrawalNoticeMessage builds the admin notification for a new withdrawal.
// amount is already formatted for display.
func WithdrawalNoticeMessage(to, name, userEmail, amount, adminURL string) (SendRequest, error) {
	var buf bytes.Buffer
	err := withdrawalTmpl.Execute(&buf, struct{ Name, Email, Amount, AdminURL string }{name, userEmail, amount, adminURL})
	if err != nil {
		return SendRequest{}, err
	}
	return SendRequest{
		To:      []string{to},
		Subject: "Withdrawal request: " + amount,
		HTML:    buf.String(),
		Text:    name + " (" + userEmail + ") requested " + amount + ".\nReview it at " + adminURL + "\n",
	}, nil
}
