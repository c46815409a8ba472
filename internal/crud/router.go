// Package crud generates the HTTP surface for matched models: five handlers
// per model, mounted under a prefix derived from the registry key.
package crud

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autocrud/autocrud/internal/db"
	"github.com/autocrud/autocrud/internal/discovery"
	log "github.com/sirupsen/logrus"
)

// resource binds one matched model to a database handle and carries the
// reflection state shared by its handlers.
type resource struct {
	entry     discovery.MatchedModel
	conn      *gorm.DB
	modelType reflect.Type // Struct type of the model.
	sliceType reflect.Type // Slice type used for list queries.
	pkColumn  string       // Primary key column name.
	title     string       // Capitalized key for messages.
}

// Mount registers generated CRUD routes for every matched model.
func Mount(router gin.IRouter, conn *gorm.DB, matched []discovery.MatchedModel) {
	for _, m := range matched {
		modelType := reflect.TypeOf(m.Model)
		for modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		res := &resource{
			entry:     m,
			conn:      conn,
			modelType: modelType,
			sliceType: reflect.SliceOf(modelType),
			pkColumn:  pkColumnOf(m),
			title:     titleOf(m.Key),
		}

		group := router.Group("/" + m.Key + "s")
		group.POST("/", res.create)
		group.GET("/", res.list)
		group.GET("/:id", res.get)
		group.PUT("/:id", res.update)
		group.DELETE("/:id", res.remove)

		log.Infof("mounted CRUD routes at /%ss", m.Key)
	}
}

// create handles POST /{key}s/.
func (r *resource) create(c *gin.Context) {
	raw, errRead := c.GetRawData()
	if errRead != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}
	values, errExtract := r.entry.Schemas[discovery.RoleCreate].Extract(raw)
	if errExtract != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errExtract.Error()})
		return
	}

	item := reflect.New(r.modelType)
	if errApply := r.applyValues(item, values); errApply != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errApply.Error()})
		return
	}

	query := r.conn.WithContext(c.Request.Context()).Select(r.insertColumns(values))
	if errCreate := query.Create(item.Interface()).Error; errCreate != nil {
		if apiErr := db.TranslateConstraintError(errCreate, r.entry.Key); apiErr != nil {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error creating %s: %v", r.entry.Key, errCreate)})
		return
	}

	// Re-read the row so column defaults filled by the engine are visible.
	fresh, errRefresh := r.fetch(c, r.pkValue(item))
	if errRefresh != nil {
		c.JSON(http.StatusOK, r.serialize(item))
		return
	}
	c.JSON(http.StatusOK, r.serialize(fresh))
}

// list handles GET /{key}s/ with offset/limit pagination.
func (r *resource) list(c *gin.Context) {
	skip := 0
	if rawSkip := c.Query("skip"); rawSkip != "" {
		parsed, errParse := strconv.Atoi(rawSkip)
		if errParse != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
			return
		}
		skip = parsed
	}
	limit := 100
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, errParse := strconv.Atoi(rawLimit)
		if errParse != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		limit = parsed
	}

	rows := reflect.New(r.sliceType)
	errFind := r.conn.WithContext(c.Request.Context()).
		Model(r.entry.Model).
		Offset(skip).
		Limit(limit).
		Find(rows.Interface()).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error listing %ss", r.entry.Key)})
		return
	}

	slice := rows.Elem()
	out := make([]map[string]any, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		out = append(out, r.serialize(slice.Index(i).Addr()))
	}
	c.JSON(http.StatusOK, out)
}

// get handles GET /{key}s/{id}.
func (r *resource) get(c *gin.Context) {
	item, errFetch := r.fetch(c, c.Param("id"))
	if errFetch != nil {
		r.renderFetchError(c, errFetch)
		return
	}
	c.JSON(http.StatusOK, r.serialize(item))
}

// update handles PUT /{key}s/{id} with partial-update semantics: only
// explicitly-provided fields are applied to the existing row.
func (r *resource) update(c *gin.Context) {
	item, errFetch := r.fetch(c, c.Param("id"))
	if errFetch != nil {
		r.renderFetchError(c, errFetch)
		return
	}

	raw, errRead := c.GetRawData()
	if errRead != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}
	values, errExtract := r.entry.Schemas[discovery.RoleUpdate].Extract(raw)
	if errExtract != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errExtract.Error()})
		return
	}
	if errApply := r.applyValues(item, values); errApply != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errApply.Error()})
		return
	}

	if errSave := r.conn.WithContext(c.Request.Context()).Save(item.Interface()).Error; errSave != nil {
		if apiErr := db.TranslateConstraintError(errSave, r.entry.Key); apiErr != nil {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error updating %s: %v", r.entry.Key, errSave)})
		return
	}
	c.JSON(http.StatusOK, r.serialize(item))
}

// remove handles DELETE /{key}s/{id}.
func (r *resource) remove(c *gin.Context) {
	item, errFetch := r.fetch(c, c.Param("id"))
	if errFetch != nil {
		r.renderFetchError(c, errFetch)
		return
	}
	if errDelete := r.conn.WithContext(c.Request.Context()).Delete(item.Interface()).Error; errDelete != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error deleting %s: %v", r.entry.Key, errDelete)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", r.title)})
}

// errNotFound marks a fetch miss.
var errNotFound = errors.New("crud: not found")

// fetch loads a row by primary key into a fresh model value.
func (r *resource) fetch(c *gin.Context, id string) (reflect.Value, error) {
	item := reflect.New(r.modelType)
	errFirst := r.conn.WithContext(c.Request.Context()).
		Where(r.pkColumn+" = ?", id).
		First(item.Interface()).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return item, errNotFound
	}
	if errFirst != nil {
		return item, fmt.Errorf("crud: fetch %s %s: %w", r.entry.Key, id, errFirst)
	}
	return item, nil
}

// renderFetchError writes the response for a failed fetch.
func (r *resource) renderFetchError(c *gin.Context, err error) {
	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", r.title)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error fetching %s", r.entry.Key)})
}

// pkValue renders the primary key of a model value as its string form.
func (r *resource) pkValue(item reflect.Value) string {
	field := r.entry.Parsed.PrioritizedPrimaryField
	if field == nil {
		return ""
	}
	return fmt.Sprintf("%v", item.Elem().FieldByIndex(field.StructField.Index).Interface())
}

// insertColumns lists the columns forced into an INSERT: every explicitly
// provided column plus the system-populated ones. Without the explicit
// selection the ORM drops zero-valued fields on defaulted columns, so a
// caller setting such a column to false or "" would get the database default
// back. Columns the caller omitted stay out of the list and keep falling
// back to their defaults.
func (r *resource) insertColumns(values map[string]any) []string {
	cols := make([]string, 0, len(values)+3)
	seen := map[string]bool{}
	for name := range values {
		if _, ok := r.entry.Parsed.FieldsByDBName[name]; ok {
			seen[name] = true
			cols = append(cols, name)
		}
	}
	for _, field := range r.entry.Parsed.Fields {
		if field.DBName == "" || seen[field.DBName] {
			continue
		}
		if field.PrimaryKey || field.AutoCreateTime != 0 || field.AutoUpdateTime != 0 {
			seen[field.DBName] = true
			cols = append(cols, field.DBName)
		}
	}
	return cols
}

// pkColumnOf resolves the primary key column name of a matched model.
func pkColumnOf(m discovery.MatchedModel) string {
	if m.Parsed != nil && m.Parsed.PrioritizedPrimaryField != nil {
		return m.Parsed.PrioritizedPrimaryField.DBName
	}
	return "id"
}

// titleOf capitalizes a registry key for user-facing messages.
func titleOf(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
