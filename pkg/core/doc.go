// Package core performs the SDK's single authenticated exchange with the API
// server: a protobuf request is serialized, gzip-compressed, signed with the
// tenant token and POSTed; a 200 response is decoded back into a protobuf
// message.
//
// Failures come back as one of two kinds. A *NetError covers timeouts and
// non-200 statuses and is usually worth retrying. A *BizError covers every
// other transport failure and undecodable responses.
package core
