package telegram

const (
	// TokenEnv holds the token of the table bot, username @yemHoldemBot
	TokenEnv = "TL_YEM_TOKEN"
	// ProxyEnv is a fixed proxy URL used instead of the http_proxy family
	ProxyEnv = "TL_PROXY"
)
