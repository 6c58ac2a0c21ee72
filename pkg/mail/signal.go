package mail

import (
	"fmt"
	"html"
	"strings"
)

// SignalEmail 信号邮件内容
type SignalEmail struct {
	Name         string
	StrategyName string
	AlertName    string
	ScanName     string
	Stocks       string
	ReceivedAt   string
}

func renderLayout(title, preheader, bodyHtml string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>%s</title>
    <style>
      body { margin:0; padding:0; background:#f6f4ef; font-family: "Segoe UI", Arial, sans-serif; color:#14161d; }
      .wrap { max-width:640px; margin:0 auto; padding:24px; }
      .card { background:#ffffff; border-radius:16px; padding:24px; border:1px solid #ece3d6; }
      h1 { font-size:20px; margin:0 0 12px; }
      .muted { color:#5a6676; font-size:14px; }
      .line { height:1px; background:#ece3d6; margin:16px 0; }
      .footer { margin-top:18px; font-size:12px; color:#7b8796; }
    </style>
  </head>
  <body>
    <span style="display:none;visibility:hidden;opacity:0;color:transparent;height:0;width:0;">%s</span>
    <div class="wrap">
      <div class="card">
        %s
      </div>
      <div class="footer">Market Maya Alerts</div>
    </div>
  </body>
</html>`, html.EscapeString(title), html.EscapeString(preheader), bodyHtml)
}

func renderSignalEmail(data SignalEmail) string {
	name := defaultStr(data.Name, "Trader")
	strategy := defaultStr(data.StrategyName, "Strategy")
	alert := defaultStr(data.AlertName, "Signal")
	scan := defaultStr(data.ScanName, "Chartink")
	stocks := defaultStr(data.Stocks, "-")

	body := fmt.Sprintf(`<h1>New signal received</h1>
<p>Hi %s,</p>
<p class="muted">A new signal arrived for your strategy.</p>
<div class="line"></div>
<p><strong>Strategy:</strong> %s</p>
<p><strong>Alert:</strong> %s</p>
<p><strong>Scan:</strong> %s</p>
<p><strong>Stocks:</strong> %s</p>
<p><strong>Time:</strong> %s</p>`,
		html.EscapeString(name),
		html.EscapeString(strategy),
		html.EscapeString(alert),
		html.EscapeString(scan),
		html.EscapeString(stocks),
		html.EscapeString(data.ReceivedAt))

	return renderLayout("New trading signal", alert+" · "+strategy, body)
}

// SendSignal 发送新信号通知邮件
func (s *Sender) SendSignal(to string, data SignalEmail) error {
	htmlBody := renderSignalEmail(data)
	text := strings.Join([]string{
		"New signal: " + defaultStr(data.AlertName, "Signal"),
		"Strategy: " + defaultStr(data.StrategyName, "Strategy"),
		"Scan: " + defaultStr(data.ScanName, "Chartink"),
		"Stocks: " + defaultStr(data.Stocks, "-"),
		"Time: " + data.ReceivedAt,
	}, "\n")
	return s.Send(to, "New trading signal", htmlBody, text)
}

func defaultStr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
