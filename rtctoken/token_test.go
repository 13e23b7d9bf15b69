package rtctoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAppId = "970CA35de60c44645bbae8a215061b33"
	testCert  = "5CFd2fd1755d40ecb72977518be15d3b"
)

func newTestToken() *Token {
	t := New(testAppId, testCert, 600)
	t.IssueTs = 1700000000
	t.Salt = 123456789
	svc := NewRtcService("channel-1", "777")
	svc.AddPrivilege(PrivJoinChannel, t.IssueTs+600)
	t.AddService(svc)
	return t
}

func TestToken_Build(t *testing.T) {
	tok := newTestToken()
	built, err := tok.Build()
	require.NoError(t, err)
	require.True(t, len(built) > 3)
	assert.Equal(t, Version, built[:3])

	parsed, err := Parse(built)
	require.NoError(t, err)
	assert.Equal(t, testAppId, parsed.AppId)
	assert.Equal(t, uint32(1700000000), parsed.IssueTs)
	assert.Equal(t, uint32(600), parsed.Expire)
	assert.Equal(t, uint32(123456789), parsed.Salt)
	require.Len(t, parsed.Services, 1)
	assert.Equal(t, ServiceTypeRtc, parsed.Services[0].Type)
	assert.Equal(t, "channel-1", parsed.Services[0].ChannelName)
	assert.Equal(t, "777", parsed.Services[0].Uid)
	assert.Equal(t, map[Privilege]uint32{PrivJoinChannel: 1700000600}, parsed.Services[0].Privileges)
	assert.True(t, parsed.Verify(testCert))

	// the inflated content must be exactly signature ++ signingInfo,
	// reconstructible from the known inputs
	expected := &writeBuf{}
	expected.putString(testAppId)
	expected.putUint32(1700000000)
	expected.putUint32(600)
	expected.putUint32(123456789)
	expected.putUint16(1)
	expected.putUint16(ServiceTypeRtc)
	expected.putUint16(1)
	expected.putUint16(uint16(PrivJoinChannel))
	expected.putUint32(1700000600)
	expected.putString("channel-1")
	expected.putString("777")
	assert.Equal(t, expected.pack(), parsed.SigningInfo)
}

func TestToken_BuildDeterministic(t *testing.T) {
	first, err := newTestToken().Build()
	require.NoError(t, err)
	second, err := newTestToken().Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestToken_SignatureDependsOnSaltAndIssueTs(t *testing.T) {
	base, err := Parse(mustBuild(t, newTestToken()))
	require.NoError(t, err)

	withSalt := newTestToken()
	withSalt.Salt++
	saltParsed, err := Parse(mustBuild(t, withSalt))
	require.NoError(t, err)
	assert.NotEqual(t, base.Signature, saltParsed.Signature)

	withTs := newTestToken()
	withTs.IssueTs++
	tsParsed, err := Parse(mustBuild(t, withTs))
	require.NoError(t, err)
	assert.NotEqual(t, base.Signature, tsParsed.Signature)
}

func TestToken_BuildCheck(t *testing.T) {
	t.Run("short app id", func(t *testing.T) {
		tok := newTestToken()
		tok.AppId = "abc"
		built, err := tok.Build()
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, built)
	})
	t.Run("non-hex certificate", func(t *testing.T) {
		tok := newTestToken()
		tok.AppCertificate = "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"
		built, err := tok.Build()
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, built)
	})
	t.Run("no services", func(t *testing.T) {
		tok := New(testAppId, testCert, 600)
		built, err := tok.Build()
		require.ErrorIs(t, err, ErrNoServices)
		assert.Empty(t, built)
	})
}

func TestFormatUid(t *testing.T) {
	assert.Equal(t, "", FormatUid(0))
	assert.Equal(t, "12345", FormatUid(12345))
}

func TestParse_RejectsUnknownPrefix(t *testing.T) {
	built := mustBuild(t, newTestToken())
	_, err := Parse("008" + built[3:])
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = Parse("00")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParsedToken_VerifyWrongCert(t *testing.T) {
	parsed, err := Parse(mustBuild(t, newTestToken()))
	require.NoError(t, err)
	assert.False(t, parsed.Verify(testAppId))
}

func mustBuild(t *testing.T, tok *Token) string {
	built, err := tok.Build()
	require.NoError(t, err)
	return built
}
