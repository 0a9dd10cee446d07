package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// secretKey 是服务器在启动时生成的32字节密钥。
var secretKey []byte

// MatchVoucher 定义了需要被签名的比赛凭证。
// 它在开局请求的响应中下发，并在成绩提交请求中被校验，
// 防止客户端伪造matchId或把凭证挪用到其他玩家/种子上。
type MatchVoucher struct {
	MatchID string `json:"m"`
	SeedID  string `json:"s"`
	UID     string `json:"u"`
}

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// GenerateMatchSignature 为一个给定的比赛凭证生成HMAC签名。
// 返回签名的Base64编码字符串。
func GenerateMatchSignature(voucher MatchVoucher) (string, error) {
	// 1. 将凭证序列化为JSON字符串
	payloadBytes, err := json.Marshal(voucher)
	if err != nil {
		return "", errors.New("无法序列化比赛凭证")
	}

	// 2. 使用HMAC-SHA256和密钥对凭证进行签名
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	signature := mac.Sum(nil)

	// 3. 对签名进行Base64编码
	return base64.RawURLEncoding.EncodeToString(signature), nil
}

// ValidateMatchSignature 验证凭证和签名是否匹配。
func ValidateMatchSignature(voucher MatchVoucher, signatureB64 string) bool {
	// 重新序列化，确保与签名时的数据格式完全一致
	payloadBytes, err := json.Marshal(voucher)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	expectedSignature := mac.Sum(nil)

	actualSignature, err := base64.RawURLEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	// 使用恒定时间比较，防止时序攻击
	return hmac.Equal(expectedSignature, actualSignature)
}
