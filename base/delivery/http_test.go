package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/xerrors"

	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
)

type deliverySuite struct {
	suite.Suite
}

func TestDeliverySuite(t *testing.T) {
	suite.Run(t, new(deliverySuite))
}

func (s *deliverySuite) do(status int, data interface{}) (*httptest.ResponseRecorder, JsonResponse) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	s.Require().NoError(MakeJsonResp(c, status, data))
	var resp JsonResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *deliverySuite) TestSuccess() {
	rec, resp := s.do(http.StatusOK, map[string]string{"a": "b"})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(JsonResponseStatusSuccess, resp.Status)
}

func (s *deliverySuite) TestMapsWrappedDomainError() {
	err := xerrors.Errorf("buy: %w", domain.ErrInsufficientPayment)
	rec, resp := s.do(http.StatusInternalServerError, err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(JsonResponseStatusFail, resp.Status)
	s.Equal(err.Error(), resp.Data)
}

func (s *deliverySuite) TestStatusOf() {
	s.Equal(http.StatusForbidden, StatusOf(domain.ErrNotSeller, 500))
	s.Equal(http.StatusNotFound, StatusOf(domain.ErrNotFound, 500))
	s.Equal(http.StatusInternalServerError, StatusOf(errors.New("boom"), 500))
}

func (s *deliverySuite) TestLogFailureLevel() {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.New(zap.New(core).Sugar())

	LogFailure(l.WithField("err", domain.ErrInvalidAmount), xerrors.Errorf("create: %w", domain.ErrInvalidAmount), "asset.CreateToken failed")
	LogFailure(l, domain.ErrNotOwner, "nftitem.Mint failed")
	LogFailure(l, xerrors.New("server selection timeout"), "asset.CreateToken failed")

	entries := logs.AllUntimed()
	s.Require().Len(entries, 3)
	s.Equal(zapcore.WarnLevel, entries[0].Level)
	s.Equal(zapcore.WarnLevel, entries[1].Level)
	s.Equal(zapcore.ErrorLevel, entries[2].Level)
	s.Equal("asset.CreateToken failed", entries[2].Message)
}
