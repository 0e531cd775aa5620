package constants

var MESSAGES_ZH_MAP = map[string]string{
	"android":          "安卓",
	"ios":              "苹果",
	"app_started":      "%s %s 成功启动！",
	"driver_closed":    "%s 驱动已成功关闭！",
	"session_id":       "会话 ID",
	"server_ready":     "自动化服务已就绪",
	"server_not_ready": "自动化服务未就绪",
	"capabilities":     "会话能力",
}

var MESSAGES_EN_MAP = map[string]string{
	"android":          "Android",
	"ios":              "iOS",
	"app_started":      "%s app %s started successfully!",
	"driver_closed":    "%s driver closed successfully!",
	"session_id":       "Session ID",
	"server_ready":     "Automation server is ready",
	"server_not_ready": "Automation server is not ready",
	"capabilities":     "Capabilities",
}
