package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "stunt not found",
			expected: "NOT_FOUND: stunt not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("stunt not found").
		WithMeta("stunt_id", int64(12)).
		WithMeta("session_id", "table-1")

	s.Equal(int64(12), err.Meta["stunt_id"])
	s.Equal("table-1", err.Meta["session_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to list stunts")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to list stunts", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "stunt not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("stunt not found", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapContextErrors() {
	s.Equal(errors.CodeCanceled, errors.Wrap(context.Canceled, "list").Code)
	s.Equal(errors.CodeDeadlineExceeded, errors.Wrap(fmt.Errorf("redis: %w", context.DeadlineExceeded), "list").Code)
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(context.DeadlineExceeded))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.Internal("dial tcp").WithMeta("addr", "localhost:6379")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "storage unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("storage unavailable", wrapped.Message)
	s.Equal("localhost:6379", wrapped.Meta["addr"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
	s.True(errors.Is(errors.Wrap(err1, "outer"), err2))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.True(errors.IsNotFound(notFoundErr))
	s.True(errors.IsNotFound(wrappedErr))
	s.False(errors.IsNotFound(invalidErr))
	s.True(errors.IsInvalidArgument(invalidErr))
	s.True(errors.IsInternal(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFound("user friendly message").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal("value", errors.GetMeta(wrapped)["key"])
	s.Nil(errors.GetMeta(stdErr))
	s.Equal("wrapped message", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(stdErr))
	s.Equal("user friendly message", errors.RootMessage(errors.Wrap(wrapped, "outer")))
	s.Equal("standard error", errors.RootMessage(stdErr))
	s.Equal("wrapped message", errors.RootMessage(errors.Wrap(stdErr, "wrapped message")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
		{errors.CodeDeadlineExceeded, 504},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestSlug() {
	s.Equal("not_found", errors.CodeNotFound.Slug())
	s.Equal("invalid_argument", errors.CodeInvalidArgument.Slug())
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.NotFound("stunt not found").WithMeta("stunt_id", 7)

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("stunt not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Equal(float64(7), errors.GetMeta(back)["stunt_id"])

	err2 := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err2))
	s.Equal("invalid input", errors.GetMessage(err2))
}

func (s *ErrorsTestSuite) TestGRPCValidationMeta() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")
	err := vb.Build()

	back := errors.FromGRPCError(errors.ToGRPCError(err))
	fields, ok := errors.GetMeta(back)["validation_errors"].(map[string]any)
	s.Require().True(ok)
	s.Equal([]any{"is required"}, fields["name"])
}
