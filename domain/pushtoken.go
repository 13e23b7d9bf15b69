package domain

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

type PushToken struct {
	DeviceId string   `bson:"_id"`
	GroupId  string   `bson:"groupId"`
	Token    string   `bson:"token"`
	Platform Platform `bson:"platform"`
	Updated  int64    `bson:"updated"`
}
