// Package mail formats the two confirmation emails the gateway sends:
// a purchase confirmation after checkout and a reward confirmation after a
// redemption webhook.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/upstream/resend"
)

type purchaseData struct {
	Items         []purchaseItem
	Total         string
	PointsEarned  int
	NewBalance    *int
	PointsPerItem int
}

type purchaseItem struct {
	Name     string
	Quantity int
	Total    string
}

type redemptionData struct {
	CustomerName    string
	RewardName      string
	RewardCode      string
	PointsRedeemed  int
	PointsRemaining int
}

var purchaseHTML = template.Must(template.New("purchase").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #006938;">Thank You for Your Order!</h1>
  <p style="font-size: 20px;"><strong>+{{.PointsEarned}} points earned!</strong></p>
  <h2>Order Summary</h2>
  <table style="width: 100%; border-collapse: collapse;">
    {{range .Items}}<tr>
      <td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">{{.Name}} (Quantity: {{.Quantity}})</td>
      <td style="padding: 8px; border-bottom: 1px solid #e5e7eb; text-align: right;">${{.Total}}</td>
    </tr>
    {{end}}<tr>
      <td style="padding: 8px;"><strong>Total</strong></td>
      <td style="padding: 8px; text-align: right;"><strong>${{.Total}}</strong></td>
    </tr>
  </table>
  {{if .NewBalance}}<p>Your new points balance: <strong>{{.NewBalance}}</strong></p>{{end}}
  <p>You earn {{.PointsPerItem}} points for every item you purchase. Keep ordering to unlock exclusive rewards.</p>
  <p style="color: #6b7280;">Wing Den - your favorite flavors, your loyalty rewards</p>
</body>
</html>`))

var purchaseText = texttemplate.Must(texttemplate.New("purchase").Parse(`Thank You for Your Order!

You've earned {{.PointsEarned}} points!

ORDER SUMMARY
{{range .Items}}{{.Name}} (Qty: {{.Quantity}}) - ${{.Total}}
{{end}}
Total: ${{.Total}}
{{if .NewBalance}}
Your new points balance: {{.NewBalance}} points
{{end}}
You earn {{.PointsPerItem}} points for every item you purchase.

Thank you for choosing Wing Den. We appreciate your loyalty!
`))

var redemptionHTML = template.Must(template.New("redemption").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #2563eb;">Reward Confirmation</h1>
  <p>Hello {{.CustomerName}},</p>
  <p>Your reward has been successfully redeemed!</p>
  <p>Reward: <strong>{{.RewardName}}</strong></p>
  {{if .RewardCode}}<p>Discount code: <strong style="font-family: monospace; letter-spacing: 2px;">{{.RewardCode}}</strong></p>
  <p>Please use this code at checkout to redeem your reward.</p>
  {{else}}<p>Your reward has been applied to your account.</p>
  {{end}}<p>Points redeemed: <strong>{{.PointsRedeemed}}</strong><br>
  Points remaining: <strong>{{.PointsRemaining}}</strong></p>
  <p style="color: #6b7280;">Wing Den Team</p>
</body>
</html>`))

var redemptionText = texttemplate.Must(texttemplate.New("redemption").Parse(`Hello {{.CustomerName}},

Your reward has been successfully redeemed!

Reward: {{.RewardName}}
{{if .RewardCode}}Discount Code: {{.RewardCode}}

Please use this code at checkout to redeem your reward.
{{else}}Your reward has been applied to your account.
{{end}}
Points Redeemed: {{.PointsRedeemed}}
Points Remaining: {{.PointsRemaining}}

Thank you for choosing Wing Den.
`))

// PurchaseConfirmation builds the post-checkout email with the order
// summary and points earned. newBalance may be nil when the loyalty
// provider did not report a tally.
func PurchaseConfirmation(from string, order model.Order, newBalance *int) (resend.Message, error) {
	data := purchaseData{
		Total:         order.DisplayTotal(),
		PointsEarned:  order.PointsEarned,
		NewBalance:    newBalance,
		PointsPerItem: model.PointsPerItem,
	}
	for _, line := range order.Lines {
		data.Items = append(data.Items, purchaseItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Total:    line.LineTotal().StringFixed(2),
		})
	}

	htmlBody, textBody, err := render(purchaseHTML, purchaseText, data)
	if err != nil {
		return resend.Message{}, err
	}
	return resend.Message{
		From:    from,
		To:      order.CustomerEmail,
		Subject: "Thank You for Your Wing Den Order!",
		HTML:    htmlBody,
		Text:    textBody,
	}, nil
}

// RedemptionConfirmation builds the webhook-triggered reward email.
func RedemptionConfirmation(from string, notice model.RedemptionNotice) (resend.Message, error) {
	rewardName := notice.RewardName
	if rewardName == "" {
		rewardName = "Reward"
	}
	data := redemptionData{
		CustomerName:    notice.CustomerName,
		RewardName:      rewardName,
		RewardCode:      notice.RewardCode,
		PointsRedeemed:  notice.PointsRedeemed,
		PointsRemaining: notice.PointsRemaining,
	}

	htmlBody, textBody, err := render(redemptionHTML, redemptionText, data)
	if err != nil {
		return resend.Message{}, err
	}
	return resend.Message{
		From:    from,
		To:      notice.Email,
		Subject: "Your Wing Den Reward - Confirmation",
		HTML:    htmlBody,
		Text:    textBody,
	}, nil
}

func render(htmlTmpl *template.Template, textTmpl *texttemplate.Template, data any) (string, string, error) {
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render the HTML body: %w", err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render the text body: %w", err)
	}
	return htmlBuf.String(), strings.TrimLeft(textBuf.String(), "\n"), nil
}
