package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseConversion(t *testing.T) {
	tests := []struct {
		in     string
		snake  string
		camel  string
		pascal string
	}{
		{"ID", "id", "id", "Id"},
		{"UserID", "user_id", "userId", "UserId"},
		{"HTTPServer", "http_server", "httpServer", "HttpServer"},
		{"FirstName", "first_name", "firstName", "FirstName"},
		{"already_snake", "already_snake", "alreadySnake", "AlreadySnake"},
		{"OAuth2Token", "o_auth2_token", "oAuth2Token", "OAuth2Token"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.snake, toSnakeCase(tt.in))
			assert.Equal(t, tt.camel, toCamelCase(tt.in))
			assert.Equal(t, tt.pascal, toPascalCase(tt.in))
		})
	}
}

func TestTableNames(t *testing.T) {
	def := DefaultNamingStrategy()
	assert.Equal(t, "users", def.TableName("User"))
	assert.Equal(t, "blog_posts", def.TableName("BlogPost"))
	assert.Equal(t, "people", def.TableName("Person"))
	assert.Equal(t, "categories", def.TableName("Category"))

	assert.Equal(t, "blogPosts", NewNamingStrategy(CamelCase, CamelCase, true).TableName("BlogPost"))
	assert.Equal(t, "BlogPost", NewNamingStrategy(PascalCase, PascalCase, false).TableName("BlogPost"))
	assert.Equal(t, "firstName", NewNamingStrategy(CamelCase, SnakeCase, true).ColumnName("FirstName"))
}
