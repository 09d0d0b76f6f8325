package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/example/pharmacare-storefront/internal/money"
)

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     int
}

// Confirmation is everything the order confirmation shows.
type Confirmation struct {
	OrderID         string
	CustomerName    string
	Items           []OrderItem
	Subtotal        int
	ShippingFee     int
	Total           int
	ShippingAddress string
	LoyaltyPoints   int
	PlacedAt        time.Time
}

var vietnam = time.FixedZone("ICT", 7*60*60)

// BuildOrderConfirmationBody builds the HTML body for order confirmation email
func BuildOrderConfirmationBody(c Confirmation) string {
	var itemsHTML strings.Builder
	for _, item := range c.Items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			html.EscapeString(name),
			item.Quantity,
			money.Format(item.Price),
			money.Format(item.Price*item.Quantity),
		))
	}

	shipping := money.Format(c.ShippingFee)
	if c.ShippingFee == 0 {
		shipping = "Miễn phí"
	}

	greeting := "Xin chào,"
	if c.CustomerName != "" {
		greeting = fmt.Sprintf("Xin chào %s,", html.EscapeString(c.CustomerName))
	}

	placedAt := ""
	if !c.PlacedAt.IsZero() {
		placedAt = c.PlacedAt.In(vietnam).Format("15:04 02/01/2006")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #00A86B 0%%, #00C851 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Cảm ơn bạn đã đặt hàng</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">%s</p>
		<p>PharmaCare đã nhận được đơn hàng của bạn. Chúng tôi sẽ liên hệ với bạn sớm nhất.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Mã đơn hàng</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
			<p style="margin: 5px 0 0 0; font-size: 14px; color: #666;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #00A86B; padding-bottom: 10px;">Chi tiết đơn hàng</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Sản phẩm</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">SL</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Đơn giá</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Thành tiền</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<p style="margin: 0;">Tạm tính: %s</p>
			<p style="margin: 0;">Phí vận chuyển: %s</p>
			<span style="font-size: 14px; color: #666;">Tổng cộng</span>
			<span style="font-size: 24px; font-weight: bold; color: #00A86B; margin-left: 10px;">%s</span>
		</div>

		<p>Địa chỉ giao hàng: %s</p>
		<p>Điểm tích lũy nhận được: <strong>%d</strong></p>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			Email này được gửi tự động. Nếu có thắc mắc, vui lòng liên hệ bộ phận hỗ trợ.
		</p>
	</div>
</body>
</html>`,
		greeting,
		html.EscapeString(c.OrderID),
		placedAt,
		itemsHTML.String(),
		money.Format(c.Subtotal),
		shipping,
		money.Format(c.Total),
		html.EscapeString(c.ShippingAddress),
		c.LoyaltyPoints,
	)
}
