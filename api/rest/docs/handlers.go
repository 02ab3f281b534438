package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"github.com/lc4490/rmp-rag/internal/errors"

	// registers the generated OpenAPI document
	_ "github.com/lc4490/rmp-rag/docs"
)

// serves the registered OpenAPI document
func Handler(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		errors.InternalError(c, "failed to read API document", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
