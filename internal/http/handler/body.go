package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jaekwang-park/todolist/internal/model"
)

const maxBodyBytes = 1 << 20

//go:embed schema/todo_item.json
var todoItemSchemaJSON string

// todoItemSchema only asserts field types. Required fields and non-empty
// titles are left to the client.
var todoItemSchema = mustCompileSchema("https://todolist.local/schema/todo_item.json", todoItemSchemaJSON)

func mustCompileSchema(url, text string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, strings.NewReader(text)); err != nil {
		panic(fmt.Sprintf("handler: add schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// bodyError is returned by decodeTodoItem; Code is the API error code.
type bodyError struct {
	Code    string
	Message string
}

func (e *bodyError) Error() string { return e.Message }

// decodeTodoItem reads a TodoItem from the request body, checking the JSON
// shape against todoItemSchema before mapping it onto the model.
func decodeTodoItem(w http.ResponseWriter, r *http.Request) (model.TodoItem, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return model.TodoItem{}, &bodyError{Code: CodeInvalidJSON, Message: "request body could not be read"}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.TodoItem{}, &bodyError{Code: CodeInvalidJSON, Message: "invalid request body"}
	}

	if err := todoItemSchema.Validate(doc); err != nil {
		return model.TodoItem{}, &bodyError{Code: CodeInvalidBody, Message: schemaMessage(err)}
	}

	var item model.TodoItem
	if err := json.Unmarshal(data, &item); err != nil {
		return model.TodoItem{}, &bodyError{Code: CodeInvalidBody, Message: decodeMessage(doc)}
	}
	return item, nil
}

// timestampFields are the members decoded into time.Time.
var timestampFields = []string{"createdAt", "completedAt"}

// decodeMessage names the member that time.Time refused after the schema
// accepted it. RFC 3339 allows a lower-case t and z; time.Parse does not.
func decodeMessage(doc any) string {
	obj, _ := doc.(map[string]any)
	for _, field := range timestampFields {
		s, ok := obj[field].(string)
		if !ok {
			continue
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Sprintf("/%s: must be an RFC 3339 date-time with upper-case T and Z", field)
		}
	}
	return "/: body does not match the todo item shape"
}

// schemaMessage reports the first leaf cause of a validation failure as
// "<json pointer>: <message>".
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s", location, ve.Message)
}
