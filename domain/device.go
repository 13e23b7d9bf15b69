package domain

type Device struct {
	Id      string `bson:"_id"`
	GroupId string `bson:"groupId"`
	UserId  string `bson:"userId"`
}

type GroupMember struct {
	UserId  string `bson:"userId"`
	GroupId string `bson:"groupId"`
	Created int64  `bson:"created"`
}
