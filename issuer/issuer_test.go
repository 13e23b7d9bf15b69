package issuer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleetwatch/sos-server/domain"
	"github.com/fleetwatch/sos-server/repo/devicerepo"
	"github.com/fleetwatch/sos-server/repo/devicerepo/mock_devicerepo"
	"github.com/fleetwatch/sos-server/repo/memberrepo/mock_memberrepo"
	"github.com/fleetwatch/sos-server/rtctoken"
)

var ctx = context.Background()

const (
	testAppId = "970CA35de60c44645bbae8a215061b33"
	testCert  = "5CFd2fd1755d40ecb72977518be15d3b"
)

func TestIssuer_IssueToken(t *testing.T) {
	t.Run("publisher gets all four privileges with equal expiry", func(t *testing.T) {
		fx := newFixture(t)
		fx.expectDevice("cam-1", "g1")
		fx.memberRepo.EXPECT().IsMember(ctx, "u1", "g1").Return(true, nil)

		resp, err := fx.IssueToken(ctx, "u1", TokenRequest{DeviceId: "cam-1", Uid: 12345, Role: RolePublisher, Expire: 600})
		require.NoError(t, err)
		assert.Equal(t, testAppId, resp.AppId)
		assert.Equal(t, "cam-1", resp.Channel)
		assert.Equal(t, uint32(600), resp.ExpiresIn)

		parsed, err := rtctoken.Parse(resp.Token)
		require.NoError(t, err)
		require.Len(t, parsed.Services, 1)
		svc := parsed.Services[0]
		assert.Equal(t, "cam-1", svc.ChannelName)
		assert.Equal(t, "12345", svc.Uid)
		expireTs := parsed.IssueTs + 600
		assert.Equal(t, map[rtctoken.Privilege]uint32{
			rtctoken.PrivJoinChannel:        expireTs,
			rtctoken.PrivPublishAudioStream: expireTs,
			rtctoken.PrivPublishVideoStream: expireTs,
			rtctoken.PrivPublishDataStream:  expireTs,
		}, svc.Privileges)
		assert.True(t, parsed.Verify(testCert))
	})
	t.Run("subscriber gets join only, uid 0 is empty", func(t *testing.T) {
		fx := newFixture(t)
		fx.expectDevice("cam-1", "g1")
		fx.memberRepo.EXPECT().IsMember(ctx, "u1", "g1").Return(true, nil)

		resp, err := fx.IssueToken(ctx, "u1", TokenRequest{DeviceId: "cam-1"})
		require.NoError(t, err)
		assert.Equal(t, uint32(defaultExpire), resp.ExpiresIn)

		parsed, err := rtctoken.Parse(resp.Token)
		require.NoError(t, err)
		svc := parsed.Services[0]
		assert.Equal(t, "", svc.Uid)
		assert.Equal(t, map[rtctoken.Privilege]uint32{
			rtctoken.PrivJoinChannel: parsed.IssueTs + defaultExpire,
		}, svc.Privileges)
	})
	t.Run("non-member is forbidden", func(t *testing.T) {
		fx := newFixture(t)
		fx.expectDevice("cam-1", "g1")
		fx.memberRepo.EXPECT().IsMember(ctx, "u2", "g1").Return(false, nil)

		_, err := fx.IssueToken(ctx, "u2", TokenRequest{DeviceId: "cam-1"})
		require.ErrorIs(t, err, ErrNotMember)
	})
	t.Run("unknown device", func(t *testing.T) {
		fx := newFixture(t)
		fx.deviceRepo.EXPECT().GetDevice(ctx, "nope").Return(domain.Device{}, devicerepo.ErrDeviceNotFound)

		_, err := fx.IssueToken(ctx, "u1", TokenRequest{DeviceId: "nope"})
		require.ErrorIs(t, err, devicerepo.ErrDeviceNotFound)
	})
	t.Run("missing credentials is a hard failure", func(t *testing.T) {
		fx := newFixture(t)
		fx.conf = Config{}
		fx.expectDevice("cam-1", "g1")
		fx.memberRepo.EXPECT().IsMember(ctx, "u1", "g1").Return(true, nil)

		resp, err := fx.IssueToken(ctx, "u1", TokenRequest{DeviceId: "cam-1"})
		require.ErrorIs(t, err, rtctoken.ErrInvalidCredentials)
		assert.Empty(t, resp.Token)
	})
}

func TestClampExpire(t *testing.T) {
	assert.Equal(t, uint32(defaultExpire), clampExpire(0))
	assert.Equal(t, uint32(minExpire), clampExpire(10))
	assert.Equal(t, uint32(maxExpire), clampExpire(999999))
	assert.Equal(t, uint32(600), clampExpire(600))
}

type fixture struct {
	*issuer
	deviceRepo *mock_devicerepo.MockDeviceRepo
	memberRepo *mock_memberrepo.MockMemberRepo
}

func (fx *fixture) expectDevice(deviceId, groupId string) {
	fx.deviceRepo.EXPECT().GetDevice(ctx, deviceId).Return(domain.Device{
		Id:      deviceId,
		GroupId: groupId,
		UserId:  "owner",
	}, nil)
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		issuer:     New().(*issuer),
		deviceRepo: mock_devicerepo.NewMockDeviceRepo(ctrl),
		memberRepo: mock_memberrepo.NewMockMemberRepo(ctrl),
	}
	fx.issuer.conf = Config{AppId: testAppId, AppCertificate: testCert}
	fx.issuer.deviceRepo = fx.deviceRepo
	fx.issuer.memberRepo = fx.memberRepo
	t.Cleanup(ctrl.Finish)
	return fx
}
