package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode picks the gin mode for an APP_ENV value. Production runs in
// release mode and "test" in test mode; anything else keeps gin's debug default.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
