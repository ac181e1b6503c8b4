package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound 被下面所有“记录不存在”的错误包装。
	ErrNotFound = errors.New("not found")

	ErrPageNotFound        = fmt.Errorf("proof page %w", ErrNotFound)
	ErrSectionNotFound     = fmt.Errorf("section %w", ErrNotFound)
	ErrTestimonialNotFound = fmt.Errorf("testimonial %w", ErrNotFound)
	ErrWorkExampleNotFound = fmt.Errorf("work example %w", ErrNotFound)
	ErrMetricNotFound      = fmt.Errorf("metric %w", ErrNotFound)
	ErrRequestNotFound     = fmt.Errorf("testimonial request %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)

	// ErrEdgeOfList 表示分区已无法继续移动。
	ErrEdgeOfList = errors.New("section is already at the edge")
	// ErrInvalidCredentials 不区分邮箱错误还是密码错误。
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRequestNotPending 表示审核的请求已被处理过。
	ErrRequestNotPending = errors.New("only pending requests can be approved")
)

// ValidationError 表示用户输入不合法。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError 包装对象存储的错误。
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistenceError 包装数据库写入错误。
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// fromValidation 将 ozzo-validation 的错误转为 ValidationError，
// 按字母序取第一个失败的字段。
func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return internal
		}
		return &ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	field := fields[0]
	return &ValidationError{Field: field, Message: errs[field].Error()}
}

// Message 返回适合在控制台提示中展示的错误文本。
func Message(err error) string {
	var verr *ValidationError
	var perr *PersistenceError
	var serr *StorageError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrNotFound):
		return capitalize(err.Error()) + "."
	case errors.Is(err, ErrEdgeOfList):
		return "Section is already at the edge."
	case errors.As(err, &serr):
		return "Upload failed. Please try again."
	case errors.As(err, &perr):
		return "Could not save your changes. Please try again."
	default:
		return capitalize(err.Error()) + "."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
