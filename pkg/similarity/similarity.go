// Package similarity 提供准入去重所需的纯函数：文本相似度与球面距离。
package similarity

import "math"

// TextSimilarity 计算两个字符串的 Dice 二元组（bigram）相似系数，取值 [0,1]。
// 对称、与参数顺序无关；大小写归一由调用方负责。
// 短于 2 个字符的输入没有 bigram：两串相等记 1，否则 0。
func TextSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[string]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	var overlap int
	for i := 0; i < len(rb)-1; i++ {
		g := string(rb[i : i+2])
		if bigrams[g] > 0 {
			bigrams[g]--
			overlap++
		}
	}

	return 2 * float64(overlap) / float64(len(ra)-1+len(rb)-1)
}

const earthRadiusKm = 6371

// HaversineKm 计算两个经纬度坐标的大圆距离（公里）。纯函数，无副作用。
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
