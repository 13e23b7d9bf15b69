package rtctoken

import (
	"bytes"
	"crypto/hmac"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/klauspost/compress/flate"
)

// Version is the 3-character format tag prepended to every token. Consumers
// must reject tokens with an unrecognized prefix.
const Version = "007"

const ServiceTypeRtc uint16 = 1

type Privilege uint16

const (
	PrivJoinChannel        Privilege = 1
	PrivPublishAudioStream Privilege = 2
	PrivPublishVideoStream Privilege = 3
	PrivPublishDataStream  Privilege = 4
)

var (
	ErrInvalidCredentials = errors.New("rtctoken: app id and certificate must be 32 hex characters")
	ErrNoServices         = errors.New("rtctoken: at least one service is required")
	ErrInvalidToken       = errors.New("rtctoken: invalid token")
)

type privilege struct {
	id       Privilege
	expireTs uint32
}

// RtcService grants time-bounded channel privileges. Privileges are written
// in insertion order; the order is part of the signed byte stream.
type RtcService struct {
	ChannelName string
	Uid         string
	privileges  []privilege
}

func NewRtcService(channelName, uid string) *RtcService {
	return &RtcService{ChannelName: channelName, Uid: uid}
}

func (s *RtcService) AddPrivilege(p Privilege, expireTs uint32) *RtcService {
	s.privileges = append(s.privileges, privilege{id: p, expireTs: expireTs})
	return s
}

func (s *RtcService) write(w *writeBuf) {
	w.putUint16(ServiceTypeRtc)
	w.putUint16(uint16(len(s.privileges)))
	for _, p := range s.privileges {
		w.putUint16(uint16(p.id))
		w.putUint32(p.expireTs)
	}
	w.putString(s.ChannelName)
	w.putString(s.Uid)
}

// Token is a builder for the signed access token. Each Build is a pure
// function of the fields; New seeds IssueTs and Salt so a fresh builder
// yields a unique signature.
type Token struct {
	AppId          string
	AppCertificate string
	IssueTs        uint32
	Expire         uint32
	Salt           uint32

	services []*RtcService
}

func New(appId, appCertificate string, expire uint32) *Token {
	return &Token{
		AppId:          appId,
		AppCertificate: appCertificate,
		IssueTs:        uint32(time.Now().Unix()),
		Expire:         expire,
		Salt:           rand.Uint32(),
	}
}

func (t *Token) AddService(s *RtcService) {
	t.services = append(t.services, s)
}

// check is intentionally weak (length plus a decode attempt): the format is
// expected to be validated upstream.
func (t *Token) check() (cert []byte, err error) {
	if len(t.AppId) != 32 || len(t.AppCertificate) != 32 {
		return nil, ErrInvalidCredentials
	}
	if _, err = hex.DecodeString(t.AppId); err != nil {
		return nil, ErrInvalidCredentials
	}
	if cert, err = hex.DecodeString(t.AppCertificate); err != nil {
		return nil, ErrInvalidCredentials
	}
	if len(t.services) == 0 {
		return nil, ErrNoServices
	}
	return cert, nil
}

// Build serializes the token, signs it, compresses the result with raw
// deflate and returns the versioned base64 string. An error means the token
// cannot be built; callers must treat that as a hard failure.
func (t *Token) Build() (string, error) {
	cert, err := t.check()
	if err != nil {
		return "", err
	}
	info := &writeBuf{}
	info.putString(t.AppId)
	info.putUint32(t.IssueTs)
	info.putUint32(t.Expire)
	info.putUint32(t.Salt)
	info.putUint16(uint16(len(t.services)))
	for _, s := range t.services {
		s.write(info)
	}
	signingInfo := info.pack()

	signature := sign(deriveSigningKey(cert, t.IssueTs, t.Salt), signingInfo)

	content := &writeBuf{}
	content.putBytes(signature)
	content.b = append(content.b, signingInfo...)

	compressed, err := deflateBytes(content.pack())
	if err != nil {
		return "", fmt.Errorf("rtctoken: compress: %w", err)
	}
	return Version + base64.StdEncoding.EncodeToString(compressed), nil
}

// FormatUid encodes a numeric uid for the token: 0 becomes the empty string,
// which the receiving service reads as "no explicit uid". Callers must
// preserve this convention exactly.
func FormatUid(uid uint32) string {
	if uid == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(uid), 10)
}

func deflateBytes(p []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := flate.NewWriter(&out, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(p); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ParsedService is one decoded service block of a token.
type ParsedService struct {
	Type        uint16
	Privileges  map[Privilege]uint32
	ChannelName string
	Uid         string
}

// ParsedToken holds the decoded fields of an access token. SigningInfo is
// the raw signed byte sequence as it appeared on the wire.
type ParsedToken struct {
	Signature   []byte
	SigningInfo []byte
	AppId       string
	IssueTs     uint32
	Expire      uint32
	Salt        uint32
	Services    []ParsedService
}

// Parse decodes a token produced by Build. It rejects tokens with an
// unrecognized version prefix and verifies nothing beyond the layout; use
// Verify to check the signature against a certificate.
func Parse(token string) (*ParsedToken, error) {
	if len(token) <= len(Version) || token[:len(Version)] != Version {
		return nil, ErrInvalidToken
	}
	compressed, err := base64.StdEncoding.DecodeString(token[len(Version):])
	if err != nil {
		return nil, ErrInvalidToken
	}
	content, err := io.ReadAll(flate.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, ErrInvalidToken
	}
	r := &readBuf{b: content}
	p := &ParsedToken{}
	if p.Signature, err = r.getBytes(); err != nil {
		return nil, ErrInvalidToken
	}
	p.SigningInfo = content[r.pos:]
	if p.AppId, err = r.getString(); err != nil {
		return nil, ErrInvalidToken
	}
	if p.IssueTs, err = r.getUint32(); err != nil {
		return nil, ErrInvalidToken
	}
	if p.Expire, err = r.getUint32(); err != nil {
		return nil, ErrInvalidToken
	}
	if p.Salt, err = r.getUint32(); err != nil {
		return nil, ErrInvalidToken
	}
	serviceCount, err := r.getUint16()
	if err != nil {
		return nil, ErrInvalidToken
	}
	for range serviceCount {
		var s ParsedService
		if s.Type, err = r.getUint16(); err != nil {
			return nil, ErrInvalidToken
		}
		privCount, err := r.getUint16()
		if err != nil {
			return nil, ErrInvalidToken
		}
		s.Privileges = make(map[Privilege]uint32, privCount)
		for range privCount {
			id, err := r.getUint16()
			if err != nil {
				return nil, ErrInvalidToken
			}
			expireTs, err := r.getUint32()
			if err != nil {
				return nil, ErrInvalidToken
			}
			s.Privileges[Privilege(id)] = expireTs
		}
		if s.ChannelName, err = r.getString(); err != nil {
			return nil, ErrInvalidToken
		}
		if s.Uid, err = r.getString(); err != nil {
			return nil, ErrInvalidToken
		}
		p.Services = append(p.Services, s)
	}
	return p, nil
}

// Verify recomputes the signature over the token's signing info with the
// given certificate.
func (p *ParsedToken) Verify(appCertificate string) bool {
	cert, err := hex.DecodeString(appCertificate)
	if err != nil {
		return false
	}
	expected := sign(deriveSigningKey(cert, p.IssueTs, p.Salt), p.SigningInfo)
	return hmac.Equal(expected, p.Signature)
}
