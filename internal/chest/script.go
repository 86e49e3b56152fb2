// Package chest parses and generates the NPC dialog scripts that hand out
// chest loot. The script dialect is the game's own dialog DSL; this package
// never executes it, it only reads the pushitem2/rand pairs out and writes
// complete scripts back.
package chest

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Drop is one loot line: thresholds are basis points of 10000 as stored in
// the script.
type Drop struct {
	ItemID    int
	Threshold int
	Count     int
	Status    int
}

// LootItem is the JSON surface of a drop: chance in percent.
type LootItem struct {
	ItemID     int     `json:"itemId"`
	ItemName   string  `json:"itemName"`
	ItemPic    string  `json:"itemPic"`
	ChestName  string  `json:"MName"`
	ChestPic   string  `json:"MID_pic"`
	DropChance float64 `json:"dropChance"`
	Count      int     `json:"count"`
	Status     int     `json:"status"`
}

var (
	pushItemRe  = regexp.MustCompile(`pushitem2\((\d+),(\d+),\d+,(\d+)\)`)
	thresholdRe = regexp.MustCompile(`rand <= (\d+)`)
)

// consolation branch item; its pushitem2 line carries no rand guard and is
// therefore never parsed as a drop.

// ParseScript extracts the loot drops from a dialog script. For every
// pushitem2 line the following three lines (starting at the line itself)
// are scanned for the rand guard carrying the threshold. An empty script
// yields an empty list; malformed lines are skipped, never an error.
func ParseScript(script string) []Drop {
	if script == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}

	var drops []Drop
	for i, line := range lines {
		m := pushItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		itemID, _ := strconv.Atoi(m[1])
		count, _ := strconv.Atoi(m[2])
		status, _ := strconv.Atoi(m[3])

		// The guard precedes the push, so look back from the push line.
		end := i + 3
		if end > len(lines) {
			end = len(lines)
		}
		start := i - 2
		if start < 0 {
			start = 0
		}
		for _, near := range lines[start:end] {
			tm := thresholdRe.FindStringSubmatch(near)
			if tm == nil {
				continue
			}
			threshold, _ := strconv.Atoi(tm[1])
			drops = append(drops, Drop{
				ItemID:    itemID,
				Threshold: threshold,
				Count:     count,
				Status:    status,
			})
			break
		}
	}

	sort.SliceStable(drops, func(i, j int) bool {
		return drops[i].Threshold > drops[j].Threshold
	})
	return drops
}

// PercentToThreshold converts a percent chance into script basis points.
// Rounded, not truncated: a threshold must survive the percent surface
// unchanged or chances drift down on every edit cycle.
func PercentToThreshold(percent float64) int {
	return int(math.Round(percent * 100))
}

// ThresholdToPercent converts script basis points back to percent.
func ThresholdToPercent(threshold int) float64 {
	return float64(threshold) / 100
}

// GenerateScript renders a full chest dialog script: slot and weight
// checks, box and key consumption, one rand branch per loot item, and the
// consolation branch.
func GenerateScript(items []LootItem, boxID, keyID, consolationID, consolationCnt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `var param menu
var int u_name
var int result
var int rand
var int rscnumber
var int check

if menu == 99
 script_exit()

elseif menu == 2
 if checkslot(2) == 0
  opendialog(13)
  script_exit()
 elseif checkweight(200) == 0
  opendialog(13)
  script_exit()
 endif

 if getitem(%d) < 1
  opendialog(11)
  script_exit()
 endif
 if getitem(%d) < 1
  opendialog(12)
  script_exit()
 endif

 if getitem(%d) > 0
  popitem(%d,1)
  popitem(%d,1)

  rand = getlgrandom() %% 10000
`, boxID, keyID, boxID, boxID, keyID)

	for i, item := range items {
		cond := "elseif"
		if i == 0 {
			cond = "if"
		}
		fmt.Fprintf(&b, "  %s rand <= %d\n", cond, PercentToThreshold(item.DropChance))
		fmt.Fprintf(&b, "   result = pushitem2(%d,%d,18,%d)\n", item.ItemID, item.Count, item.Status)
	}

	fmt.Fprintf(&b, `  else
   result = pushitem2(%d,%d,18,1)
  endif
 endif

 opendialog(10)
 script_exit()

else
 opendialog(0,u_name)
 script_exit()
endif`, consolationID, consolationCnt)

	return b.String()
}

// GenerateDialog renders the GUIText dialog shown by the chest NPC, with
// one inline icon reference per loot item. The icon value packs the item
// status and the zero-padded item id into one number.
func GenerateDialog(items []LootItem) string {
	var b strings.Builder
	b.WriteString(`<GUIText ver=2>

<text no=0>
<p>&sp;Они говорят, что глупо полагаться на одну лишь удачу. Но разве в нашей жизни нет места чудесам?

Вы можете быть сколь угодно сильным и мудрым, но иногда все решает случай.

Если вы хотите испытать судьбу, попробуйте узнать, что находится внутри золотого сундука!

Если вам удастся его раздобыть, обращайтесь. Я помогу его открыть.&nl;&nl;</p>

<p color=FF99CC33 link=10>[Проверить содержимое золотого сундука]&nl;&nl;</p>
<p color=FFFF6600 link=9>[Узнать содержимое сундука]&nl;&nl;</p>
<p color=FF99CC33 link=21>[Пожертвовать]&nl;&nl;&nl;&nl;</p>
<p color=FF99CC33 act=0 val=99>[Завершить диалог]&nl;&nl;</p>
</text>

<text no=9>
`)

	for _, item := range items {
		id := strconv.Itoa(item.ItemID)
		pad := 7 - len(id)
		if pad < 0 {
			pad = 0
		}
		padding := strconv.Itoa(item.Status) + strings.Repeat("0", pad)
		fmt.Fprintf(&b, "<m width=16 height=16 value=%s%s></m><p>*3%s*5 %d шт.*9&nl;&nl;</p>\n",
			padding, id, item.ItemName, item.Count)
	}

	b.WriteString(`</text>

<text no=10>
<p>
К золотому сундуку подходит только ключ из чистого золота.

Мне необходим ключ от золотого сундука.

Другой ключ нам не подойдет.&nl;

*1Требуется: золотой сундук, 1 шт.&nl;
*1Требуется: ключ от золотого сундука, 1 шт.&nl;
</p>

<p color=FF99CC33 act=0 val=2>&nl;[Проверить содержимое золотого сундука]</p>
<p>&nl;&nl;</p>
<p color=FF99CC33 act=0 val=99>[Завершить диалог]</p>
</text>
<text no=11>
<p>
У вас не хватает необходимых предметов.&nl;

*1Требуется: золотой сундук, 1 шт.&nl;&nl;
</p>

<p color=FF99CC33 act=0 val=99>[Завершить диалог]</p>
</text>

<text no=12>
<p>
Не хватает ключа от золотого сундука...&nl;

*1Требуется: ключ от золотого сундука, 1 шт.&nl;&nl;
</p>

<p color=FF99CC33 act=0 val=99>[Завершить диалог]</p>
</text>

<text no=13>
<p>
В вашем инвентаре недостаточно свободного места, либо Вы перегружены.
</p>
</text>

<text no=21>
<p>
О... Моя благодарность не знает границ!.. Это такая честь, получить в дар *4золотой сундук с сокровищами*9.
Будьте уверены: чем больше пожертвований вы сделаете, тем скорее вам повезет.
</p>
</text>`)

	return b.String()
}
