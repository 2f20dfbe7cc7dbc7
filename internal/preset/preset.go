// Package preset holds the fixed table of known mail provider settings
// offered during interactive transport setup.
package preset

// Well-known preset keys.
const (
	KeyGmailOAuth = "gmail_oauth"
	KeyGmail      = "gmail"
	KeyManual     = "manual"
)

// Preset describes one provider entry in the selection prompt.
type Preset struct {
	// Key identifies the preset; KeyManual switches to fully manual entry.
	Key string

	// Label is the human-readable option text.
	Label string

	// Host and Port locate the SMTP endpoint. Zero values for manual
	// and OAuth-less entries that require further input.
	Host string
	Port int

	// UseTLS selects STARTTLS; UseSSL selects implicit TLS.
	UseTLS bool
	UseSSL bool

	// UseOAuth marks presets authenticating with XOAUTH2 instead of a
	// password.
	UseOAuth bool

	// Note is shown to the operator after selection; HelpURL points at
	// the provider's credential documentation.
	Note    string
	HelpURL string
}

// Presets is the ordered provider table shown in the selection prompt.
var Presets = []Preset{
	{
		Key:      KeyGmailOAuth,
		Label:    "Gmail (OAuth 2.0) - no password needed",
		Host:     "smtp.gmail.com",
		Port:     587,
		UseTLS:   true,
		UseOAuth: true,
		Note:     "Uses OAuth 2.0 - requires an OAuth client configuration file.",
		HelpURL:  "https://console.cloud.google.com/",
	},
	{
		Key:     KeyGmail,
		Label:   "Gmail (App Password) - smtp.gmail.com",
		Host:    "smtp.gmail.com",
		Port:    587,
		UseTLS:  true,
		Note:    "Requires an App Password (enable 2FA first)",
		HelpURL: "https://support.google.com/accounts/answer/185833",
	},
	{
		Key:     "outlook",
		Label:   "Outlook/Hotmail (smtp-mail.outlook.com)",
		Host:    "smtp-mail.outlook.com",
		Port:    587,
		UseTLS:  true,
		Note:    "Use your regular Outlook/Hotmail credentials",
		HelpURL: "https://support.microsoft.com/en-us/office/pop-imap-and-smtp-settings-for-outlook-com",
	},
	{
		Key:     "yahoo",
		Label:   "Yahoo (smtp.mail.yahoo.com)",
		Host:    "smtp.mail.yahoo.com",
		Port:    587,
		UseTLS:  true,
		Note:    "Generate an App Password in Yahoo Account settings",
		HelpURL: "https://help.yahoo.com/kb/generate-third-party-passwords-sln15241.html",
	},
	{
		Key:     "icloud",
		Label:   "iCloud (smtp.mail.me.com)",
		Host:    "smtp.mail.me.com",
		Port:    587,
		UseTLS:  true,
		Note:    "Generate an app-specific password at appleid.apple.com",
		HelpURL: "https://support.apple.com/en-us/HT204397",
	},
	{
		Key:     "zoho",
		Label:   "Zoho (smtp.zoho.com)",
		Host:    "smtp.zoho.com",
		Port:    587,
		UseTLS:  true,
		Note:    "Use your Zoho Mail credentials",
		HelpURL: "https://www.zoho.com/mail/help/zoho-smtp.html",
	},
	{
		Key:     "protonmail",
		Label:   "ProtonMail (requires Bridge)",
		Host:    "smtp.protonmail.ch",
		Port:    587,
		UseTLS:  true,
		Note:    "Requires ProtonMail Bridge - not fully supported yet",
		HelpURL: "https://protonmail.com/bridge/",
	},
	{
		Key:   KeyManual,
		Label: "Manual configuration (custom SMTP server)",
	},
}

// ByKey looks a preset up by its key.
func ByKey(key string) (Preset, bool) {
	for _, p := range Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
