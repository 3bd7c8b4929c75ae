package domain

// BlogSettings is the site-wide configuration record. Exactly one instance
// exists; it is stored as a single-element collection.
type BlogSettings struct {
	General       GeneralSettings      `json:"general"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Content       ContentSettings      `json:"content"`
	SEO           SEOSettings          `json:"seo"`
	Analytics     AnalyticsSettings    `json:"analytics"`
	Security      SecuritySettings     `json:"security"`
	Notifications NotificationSettings `json:"notifications"`
}

type GeneralSettings struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	SiteURL         string `json:"siteUrl"`
	Timezone        string `json:"timezone"`
	Language        string `json:"language"`
}

type AppearanceSettings struct {
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	ShowSidebar  bool   `json:"showSidebar"`
}

type ContentSettings struct {
	PostsPerPage        int  `json:"postsPerPage"`
	EnableComments      bool `json:"enableComments"`
	ModerateComments    bool `json:"moderateComments"`
	AllowGuestComments  bool `json:"allowGuestComments"`
	ShowAuthorBio       bool `json:"showAuthorBio"`
	ShowReadingTime     bool `json:"showReadingTime"`
	EnableSocialSharing bool `json:"enableSocialSharing"`
}

type SEOSettings struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	TwitterHandle   string `json:"twitterHandle"`
}

type AnalyticsSettings struct {
	Enabled    bool   `json:"enabled"`
	TrackingID string `json:"trackingId"`
}

type SecuritySettings struct {
	EnableTwoFactor  bool `json:"enableTwoFactor"`
	SessionTimeout   int  `json:"sessionTimeout"`
	MaxLoginAttempts int  `json:"maxLoginAttempts"`
}

type NotificationSettings struct {
	EmailOnComment    bool `json:"emailOnComment"`
	EmailOnNewUser    bool `json:"emailOnNewUser"`
	WeeklyDigest      bool `json:"weeklyDigest"`
	NewsletterEnabled bool `json:"newsletterEnabled"`
}

// DefaultSettings returns the settings used when none have been saved.
func DefaultSettings() BlogSettings {
	return BlogSettings{
		General: GeneralSettings{
			SiteName:        "Modern Blog",
			SiteDescription: "A modern blog about web development, programming, and technology",
			SiteURL:         "https://modernblog.com",
			Timezone:        "UTC",
			Language:        "en",
		},
		Appearance: AppearanceSettings{
			Theme:        "system",
			PrimaryColor: DefaultCategoryColor,
			ShowSidebar:  true,
		},
		Content: ContentSettings{
			PostsPerPage:        10,
			EnableComments:      true,
			ModerateComments:    true,
			AllowGuestComments:  true,
			ShowAuthorBio:       true,
			ShowReadingTime:     true,
			EnableSocialSharing: true,
		},
		SEO: SEOSettings{
			MetaTitle:       "Modern Blog - Web Development & Technology",
			MetaDescription: "Articles about modern web development, JavaScript, React, Next.js and CSS",
			TwitterHandle:   "@modernblog",
		},
		Security: SecuritySettings{
			SessionTimeout:   24,
			MaxLoginAttempts: 5,
		},
		Notifications: NotificationSettings{
			EmailOnComment: true,
			EmailOnNewUser: true,
		},
	}
}
