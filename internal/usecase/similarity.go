package usecase

// Similarity は Ratcliff/Obershelp 方式の類似度（0.0〜1.0）を返します
// 最長一致ブロックを見つけ、その左右を再帰的に同様に処理して一致文字数 M を数え、
// 2*M / (len(a)+len(b)) を類似度とします。比較はルーン単位です
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(ra, rb)) / float64(total)
}

type span struct{ alo, ahi, blo, bhi int }

// matchingRunes は一致ブロックの合計長を返します
func matchingRunes(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, s)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch は a[alo:ahi] と b[blo:bhi] の最長共通部分文字列を探します
// 同じ長さなら a 側、次に b 側でより前にあるものを優先します
func longestMatch(a []rune, b2j map[rune][]int, s span) (besti, bestj, bestk int) {
	besti, bestj = s.alo, s.blo
	j2len := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestk
}
