package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.POST("/api/v1/diagrams/:kind", func(c *gin.Context) { c.String(http.StatusOK, c.Param("kind")) })
	engine.GET("/fail", func(c *gin.Context) { c.AbortWithStatus(http.StatusInternalServerError) })
	engine.GET("/bad", func(c *gin.Context) { c.AbortWithStatus(http.StatusUnprocessableEntity) })
	engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

//Personal.AI order the ending
