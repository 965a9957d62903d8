package response

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// appName prefixes the alert headers consumed by the web client.
const appName = "basketballApp"

// Alert headers mirror the fixed contract of the original web client:
// X-<app>-alert carries an i18n key, X-<app>-params the entity id.

// SetCreationAlert marks a successful entity creation.
func SetCreationAlert(c *gin.Context, entity, id string) {
	c.Header("X-"+appName+"-alert", appName+"."+entity+".created")
	c.Header("X-"+appName+"-params", id)
}

// SetUpdateAlert marks a successful entity update.
func SetUpdateAlert(c *gin.Context, entity, id string) {
	c.Header("X-"+appName+"-alert", appName+"."+entity+".updated")
	c.Header("X-"+appName+"-params", id)
}

// SetDeletionAlert marks a successful entity deletion.
func SetDeletionAlert(c *gin.Context, entity, id string) {
	c.Header("X-"+appName+"-alert", appName+"."+entity+".deleted")
	c.Header("X-"+appName+"-params", id)
}

// SetFailureAlert marks a rejected request with an error key.
func SetFailureAlert(c *gin.Context, entity, key string) {
	c.Header("X-"+appName+"-error", "error."+key)
	c.Header("X-"+appName+"-params", entity)
}

// SetLocation points at the freshly created resource.
func SetLocation(c *gin.Context, path string, id int64) {
	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimRight(path, "/"), id))
}

// WritePage writes a page body plus the pagination headers
// (X-Total-Count and RFC 5988 Link relations) and a 200 status.
func WritePage[T any](c *gin.Context, items []T, total, limit, offset int, basePath string) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	c.Header("X-Total-Count", strconv.Itoa(total))

	links := make([]string, 0, 4)
	link := func(rel string, off int) string {
		return fmt.Sprintf("<%s?limit=%d&offset=%d>; rel=\"%s\"", basePath, limit, off, rel)
	}
	if offset+limit < total {
		links = append(links, link("next", offset+limit))
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, link("prev", prev))
	}
	last := 0
	if total > 0 {
		last = ((total - 1) / limit) * limit
	}
	links = append(links, link("last", last), link("first", 0))
	c.Header("Link", strings.Join(links, ","))

	c.JSON(http.StatusOK, items)
}
