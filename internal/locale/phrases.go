package locale

import (
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/opponent"
)

var english = &Phrasebook{
	Language: English,
	Title:    "🎴 X/Y/Z Card Battle",
	Footer:   "X/Y/Z Card Battle v1.1",
	Labels: Labels{
		YourHand:         "🎴 Your hand",
		OpponentHand:     "🤖 CPU hand",
		OpponentComment:  "🤖 CPU comment",
		Hand:             "Hand",
		Exchange:         "🔄 Exchange",
		ExchangeRequired: "🚫 Exchange required",
		Exchanged:        "★ Exchanged! ★",
		NoExchange:       "★ No exchange! ★",
		PickYours:        "Select your card (left / middle / right / back):",
		PickOpponent:     "Select CPU card (left / middle / right):",
		Back:             "← Back to CPU card selection...",
		PressStart:       "Type start to play.",
		ContinuePrompt:   "Continue? (next / stop)",
		Redealing:        "Redeal the cards...",
		GameOver:         "Game over",
		Goodbye:          "See you again!",
		Round:            "Round %d",
		Wins:             "%d wins",
		Streak:           "Streak",
		Best:             "Best",
		Tier:             "Mode",
		History:          "History",
		NoHistory:        "No rounds played yet.",
		ExchangeHint:     "swap <yours> <cpu>, swap, or battle to keep your hand",
		Swapped:          "You gave [%s] and took [%s]",
		RestartPrompt:    "Type restart to play again, or quit.",
		NotNow:           "You can't do that right now.",
		Unknown:          "Unknown command %q. Type rules for help.",
		Summary:          "%d played: %d won, %d lost, %d drawn",
	},
	laughs: [...]string{"Heh!", "Hahaha!", "Zehahaha!"},
	conditions: map[opponent.Condition]string{
		opponent.Perfect:     "Perfect.",
		opponent.NotBad:      "Well, not bad.",
		opponent.FeelingGood: "Feeling good.",
		opponent.Whatever:    "Whatever. Hurry up.",
	},
	comment: "\"%s %s\"",
	ranks: map[evaluator.Rank]string{
		evaluator.AllSame:      "Three of a kind 👑",
		evaluator.AllDifferent: "All different ⭐",
		evaluator.TwoPlusOne:   "Two + One",
	},
	tiers: map[difficulty.Level]string{
		difficulty.Easy:        "Easy",
		difficulty.Challenging: "Challenging",
		difficulty.Hard:        "Hard",
		difficulty.Oni:         "Oni",
		difficulty.Hell:        "Hell",
		difficulty.EndlessHell: "Endless Hell",
	},
	positions:       [...]string{"left", "middle", "right"},
	revealPositions: [...]string{"left", "middle", "right"},
	revealCard:      "%s is %s",
	revealSep:       ", ",
	revealPrefix:    "💡 ",
	concealed: map[difficulty.Level]string{
		difficulty.Hard:        "I won't tell you.",
		difficulty.Oni:         "Guess if you can.",
		difficulty.Hell:        "Exchange is mandatory.",
		difficulty.EndlessHell: "Believe me if you want...",
	},
	milestones: map[difficulty.Level]string{
		difficulty.Challenging: "🔥 Challenging mode unlocked!",
		difficulty.Hard:        "🔥🔥 Hard mode unlocked!",
		difficulty.Oni:         "🔥🔥🔥 Oni mode unlocked!",
		difficulty.Hell:        "💀 Hell mode unlocked! Exchange required.",
		difficulty.EndlessHell: "👹 Endless Hell unlocked! 30% lie chance.",
	},
	outcomes: map[evaluator.Outcome]string{
		evaluator.PlayerWins:   "🎉 Victory!! 🎉",
		evaluator.OpponentWins: "💀 Defeat... 💀",
		evaluator.Draw:         "😐 Draw!",
	},
	rules: `Basics
  - You get 3 cards: X/Y/Z
  - Power: X beats Y, Y beats Z, Z beats X

Hands
  1. 👑 Three of a kind - strongest
  2. ⭐ All different - next
  3. Two + One - weakest
  Same hand: the majority card decides. All different vs all different is a draw.

CPU hints
  "Heh!"       X majority
  "Hahaha!"    Y majority
  "Zehahaha!"  Z majority

  "Perfect."             Three of a kind
  "Well, not bad."       All different
  "Whatever. Hurry up."  Two + One

Difficulty
  0-9      🟢 Easy          Reveal left & right
  10-29    🟡 Challenging   Reveal left only
  30-49    🟠 Hard          No reveal
  50-99    🔴 Oni           Vague hand hint
  100-199  💀 Hell          Exchange required
  200+     👹 Endless Hell  30% lie chance

Commands
  start, swap <yours> <cpu>, swap, battle (skip), redeal,
  next, stop, restart, rules, history, quit`,
}

var japanese = &Phrasebook{
	Language: Japanese,
	Title:    "🎴 X/Y/Z カード対戦ゲーム",
	Footer:   "X/Y/Z カード対戦ゲーム v1.1",
	Labels: Labels{
		YourHand:         "▼ あなたの手札",
		OpponentHand:     "▼ CPUの手札",
		OpponentComment:  "▼ CPUのコメント",
		Hand:             "役",
		Exchange:         "▼ カードを交換しますか？",
		ExchangeRequired: "▼ 地獄篇以上では交換は必須だ！",
		Exchanged:        "★ 交換成立！ ★",
		NoExchange:       "★ 交換なし！ ★",
		PickYours:        "あなたの手札のどれと交換する？（左 / まん中 / 右 / 戻る）",
		PickOpponent:     "CPUの3枚のカードのうち、どれと交換する？（左 / まん中 / 右）",
		Back:             "← CPUの手札選択に戻ります...",
		PressStart:       "start と入力してゲーム開始！",
		ContinuePrompt:   "続けますか？ (next / stop)",
		Redealing:        "カードを配り直します...",
		GameOver:         "【ゲームオーバー】",
		Goodbye:          "また遊んでね！",
		Round:            "【第%d戦】",
		Wins:             "%d 連勝",
		Streak:           "連勝",
		Best:             "最高",
		Tier:             "モード",
		History:          "戦績",
		NoHistory:        "まだ対戦していません。",
		ExchangeHint:     "swap <あなた> <CPU>、swap、または battle で交換せず勝負",
		Swapped:          "[%s] を渡して [%s] をもらった",
		RestartPrompt:    "restart でもう一度、quit で終了",
		NotNow:           "今はそれはできません。",
		Unknown:          "%q は知らないコマンドだ。rules でルールを表示",
		Summary:          "%d 戦: %d 勝 %d 敗 %d 分",
	},
	laughs: [...]string{"へへ！", "わっはっは、", "ゼハハハッ"},
	conditions: map[opponent.Condition]string{
		opponent.Perfect:     "絶好調だ",
		opponent.NotBad:      "そこそこだ",
		opponent.FeelingGood: "調子良さげだ",
		opponent.Whatever:    "知らん、早くしろ",
	},
	comment: "「%s%s」",
	ranks: map[evaluator.Rank]string{
		evaluator.AllSame:      "【3枚同じ】",
		evaluator.AllDifferent: "【3種全部】",
		evaluator.TwoPlusOne:   "【2枚+1枚】",
	},
	tiers: map[difficulty.Level]string{
		difficulty.Easy:        "かんたん",
		difficulty.Challenging: "やりがい",
		difficulty.Hard:        "挑戦",
		difficulty.Oni:         "鬼",
		difficulty.Hell:        "地獄篇",
		difficulty.EndlessHell: "無限地獄篇",
	},
	positions:       [...]string{"左", "まん中", "右"},
	revealPositions: [...]string{"左端", "まん中", "右端"},
	revealCard:      "%sは[%s]",
	revealSep:       "、",
	revealPrefix:    "💡 ヒント: ",
	revealSuffix:    "だ",
	concealed: map[difficulty.Level]string{
		difficulty.Hard:        "ふふふ、教えないよ",
		difficulty.Oni:         "さあ、どうかな？",
		difficulty.Hell:        "交換は必須だ、覚悟しろ",
		difficulty.EndlessHell: "信じるか信じないかはあなた次第...",
	},
	milestones: map[difficulty.Level]string{
		difficulty.Challenging: "🔥 やりがいモード突入！ヒントが減ります...",
		difficulty.Hard:        "🔥🔥 挑戦モード突入！カード開示がなくなります...",
		difficulty.Oni:         "🔥🔥🔥 鬼モード突入！役のヒントが曖昧に...",
		difficulty.Hell:        "💀 地獄篇突入！交換は必須になります...",
		difficulty.EndlessHell: "👹 無限地獄篇突入！CPUが嘘をつくようになります...",
	},
	outcomes: map[evaluator.Outcome]string{
		evaluator.PlayerWins:   "🎉 勝利！！ 🎉",
		evaluator.OpponentWins: "💀 敗北... 💀",
		evaluator.Draw:         "😐 引き分け！",
	},
	rules: `【ルール説明】
・X/Y/Zの3枚がランダムに配られます
・力関係: X→Yに勝つ, Y→Zに勝つ, Z→Xに勝つ
・役の強さ:
  最強: 3枚同じ (例: X,X,X)
  次点: 3枚全部違う (例: X,Y,Z)
  最弱: 2枚+1枚 (例: X,X,Y)
・CPUのコメントをヒントに、カード交換（または交換なし）で勝負！
・引き分けの場合はカードを配り直し

【CPUのヒント解読】
  笑い声で多いカードがわかる:
    「へへ！」→X多め
    「わっはっは、」→Y多め
    「ゼハハハッ」→Z多め
  調子で役がわかる:
    「絶好調だ」→3枚同じ
    「そこそこだ」→3枚全部違う
    「知らん、早くしろ」→2枚+1枚

【難易度モード】
  ～9連勝:      かんたん   → 左端と右端のカードを教えてもらえる
  10～29連勝:   やりがい   → 左端のカードだけ教えてもらえる
  30～49連勝:   挑戦       → カード開示なし
  50～99連勝:   鬼         → 役のヒントが曖昧に
  100～199連勝: 地獄篇     → 「交換しない」を選べない
  200連勝～:    無限地獄篇 → CPUが30%の確率で嘘をつく

【コマンド】
  start, swap <自分> <CPU>, swap, battle (skip), redeal,
  next, stop, restart, rules, history, quit`,
}
