//go:generate mockgen -destination mock_issuer/mock_issuer.go github.com/fleetwatch/sos-server/issuer Issuer

package issuer

import (
	"context"
	"errors"
	"fmt"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/repo/devicerepo"
	"github.com/fleetwatch/sos-server/repo/memberrepo"
	"github.com/fleetwatch/sos-server/rtctoken"
)

const CName = "sos.issuer"

var log = logger.NewNamed(CName)

var (
	// ErrNotMember means the caller does not belong to the device's group.
	ErrNotMember = errors.New("caller is not a member of the device group")
)

const (
	defaultExpire = 3600
	minExpire     = 60
	maxExpire     = 86400
)

type Role string

const (
	RolePublisher  Role = "publisher"
	RoleSubscriber Role = "subscriber"
)

type configSource interface {
	GetRtc() Config
}

type Config struct {
	AppId          string `yaml:"appId"`
	AppCertificate string `yaml:"appCertificate"`
}

type TokenRequest struct {
	DeviceId string
	Uid      uint32
	Role     Role
	Expire   uint32
}

type TokenResponse struct {
	Token     string
	AppId     string
	Channel   string
	Uid       uint32
	ExpiresIn uint32
}

func New() Issuer {
	return new(issuer)
}

type Issuer interface {
	// IssueToken authorizes userId against the device's group and mints a
	// channel token. The device id doubles as the channel name.
	IssueToken(ctx context.Context, userId string, req TokenRequest) (resp TokenResponse, err error)
	// Configured reports whether signing credentials are present, for the
	// liveness probe. It never exposes the credentials themselves.
	Configured() bool
	app.Component
}

type issuer struct {
	conf       Config
	deviceRepo devicerepo.DeviceRepo
	memberRepo memberrepo.MemberRepo
}

func (s *issuer) Init(a *app.App) (err error) {
	s.conf = a.MustComponent("config").(configSource).GetRtc()
	s.deviceRepo = a.MustComponent(devicerepo.CName).(devicerepo.DeviceRepo)
	s.memberRepo = a.MustComponent(memberrepo.CName).(memberrepo.MemberRepo)
	return
}

func (s *issuer) Name() (name string) {
	return CName
}

func (s *issuer) Configured() bool {
	return s.conf.AppId != "" && s.conf.AppCertificate != ""
}

func (s *issuer) IssueToken(ctx context.Context, userId string, req TokenRequest) (resp TokenResponse, err error) {
	device, err := s.deviceRepo.GetDevice(ctx, req.DeviceId)
	if err != nil {
		return
	}
	ok, err := s.memberRepo.IsMember(ctx, userId, device.GroupId)
	if err != nil {
		return resp, fmt.Errorf("membership lookup: %w", err)
	}
	if !ok {
		return resp, ErrNotMember
	}

	expire := clampExpire(req.Expire)
	token := rtctoken.New(s.conf.AppId, s.conf.AppCertificate, expire)
	expireTs := token.IssueTs + expire
	service := rtctoken.NewRtcService(req.DeviceId, rtctoken.FormatUid(req.Uid))
	service.AddPrivilege(rtctoken.PrivJoinChannel, expireTs)
	if req.Role == RolePublisher {
		service.AddPrivilege(rtctoken.PrivPublishAudioStream, expireTs).
			AddPrivilege(rtctoken.PrivPublishVideoStream, expireTs).
			AddPrivilege(rtctoken.PrivPublishDataStream, expireTs)
	}
	token.AddService(service)

	built, err := token.Build()
	if err != nil {
		return resp, fmt.Errorf("token build: %w", err)
	}
	tokensIssued.WithLabelValues(string(roleOrDefault(req.Role))).Inc()
	log.Info("token issued",
		zap.String("deviceId", req.DeviceId),
		zap.String("role", string(roleOrDefault(req.Role))),
		zap.Uint32("expire", expire))
	return TokenResponse{
		Token:     built,
		AppId:     s.conf.AppId,
		Channel:   req.DeviceId,
		Uid:       req.Uid,
		ExpiresIn: expire,
	}, nil
}

func clampExpire(expire uint32) uint32 {
	switch {
	case expire == 0:
		return defaultExpire
	case expire < minExpire:
		return minExpire
	case expire > maxExpire:
		return maxExpire
	}
	return expire
}

func roleOrDefault(role Role) Role {
	if role == RolePublisher {
		return RolePublisher
	}
	return RoleSubscriber
}
