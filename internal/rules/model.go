package rules

// 本包管理引擎的外部规则面：排名概率配置、积分规则表和每日上限配置。
// 规则是外部提供的、可热更新的数据，不是编译期常量；
// 所有校验都在加载时完成，运行路径拿到的RuleSet一定是合法的。

// LimitKind 区分每日上限的账目类型
type LimitKind string

// 配置文件的map键会被统一转成小写，这里全部使用小写下划线风格
const (
	KindExp          LimitKind = "exp"
	KindSeasonPoints LimitKind = "season_points"
)

// BonusKind 是积分加成规则的封闭枚举。
// 原始数据中的动态规则对象在这里收敛为带参数的标签变体，加载时校验。
type BonusKind string

const (
	BonusWinningStreak BonusKind = "winning_streak"
	BonusPerfectScore  BonusKind = "perfect_score"
	BonusQuickWin      BonusKind = "quick_win"
	BonusHighScore     BonusKind = "high_score"
)

// BonusRule 定义了一条加成规则：谓词参数 + 固定加成点数。
// 各条规则相互独立，可叠加。
type BonusRule struct {
	Kind   BonusKind `mapstructure:"kind" json:"kind"`
	Points int       `mapstructure:"points" json:"points"`

	// 谓词参数，只有对应Kind的字段有意义
	MinStreak      int     `mapstructure:"minStreak" json:"minStreak,omitempty"`
	MaxDurationSec int     `mapstructure:"maxDurationSec" json:"maxDurationSec,omitempty"`
	MinScore       float64 `mapstructure:"minScore" json:"minScore,omitempty"`
}

// PointRules 定义了名次到基础点数的映射和加成规则表
type PointRules struct {
	// RankPoints 以序数后缀key（"1st"/"2nd"/...）映射基础点数
	RankPoints map[string]int `mapstructure:"rankPoints" json:"rankPoints"`
	// DefaultPoints 是映射之外名次的保底点数
	DefaultPoints int `mapstructure:"defaultPoints" json:"defaultPoints"`
	// Bonuses 是可叠加的加成规则
	Bonuses []BonusRule `mapstructure:"bonuses" json:"bonuses"`
}

// ScoreThreshold 定义了一个分数区间及其对应的名次概率分布。
// MaxScore <= 0 表示该区间无上限。
type ScoreThreshold struct {
	MinScore             float64   `mapstructure:"minScore" json:"minScore"`
	MaxScore             float64   `mapstructure:"maxScore" json:"maxScore"`
	RankingProbabilities []float64 `mapstructure:"rankingProbabilities" json:"rankingProbabilities"`
	Priority             int       `mapstructure:"priority" json:"priority"`
}

// Contains 判断分数是否落在该区间内
func (t ScoreThreshold) Contains(score float64) bool {
	if score < t.MinScore {
		return false
	}
	return t.MaxScore <= 0 || score <= t.MaxScore
}

// SelectionMode 决定从概率分布中取名次的方式
const (
	SelectionWeighted = "weighted" // 按概率加权随机抽取
	SelectionExpected = "expected" // 取概率加权的期望名次（确定性）
)

// SegmentConfig 是单个段位（技能分层）的排名配置
type SegmentConfig struct {
	ScoreThresholds        []ScoreThreshold `mapstructure:"scoreThresholds" json:"scoreThresholds"`
	BaseRankingProbability []float64        `mapstructure:"baseRankingProbability" json:"baseRankingProbability"`
	MaxRank                int              `mapstructure:"maxRank" json:"maxRank"`
	Adaptive               bool             `mapstructure:"adaptiveMode" json:"adaptiveMode"`
	SelectionMode          string           `mapstructure:"selectionMode" json:"selectionMode"`
	LearningRate           float64          `mapstructure:"learningRate" json:"learningRate"`
}

// LimitConfig 是单个账目类型的每日软上限配置
type LimitConfig struct {
	FullRewardThreshold    int     `mapstructure:"fullRewardThreshold" json:"fullRewardThreshold"`
	ReducedRewardThreshold int     `mapstructure:"reducedRewardThreshold" json:"reducedRewardThreshold"`
	ReductionStep          int     `mapstructure:"reductionStep" json:"reductionStep"`
	ReductionRate          float64 `mapstructure:"reductionRate" json:"reductionRate"`
	MinRewardRate          float64 `mapstructure:"minRewardRate" json:"minRewardRate"`
	// SourceCaps 是可选的单来源上限，key为积分来源（如 "tournament"）
	SourceCaps map[string]int `mapstructure:"sourceCaps" json:"sourceCaps,omitempty"`
}

// RuleSet 是完整的规则面快照。加载校验通过后整体原子替换，运行期只读。
type RuleSet struct {
	Segments       map[string]SegmentConfig  `mapstructure:"segments" json:"segments"`
	DefaultSegment string                    `mapstructure:"defaultSegment" json:"defaultSegment"`
	Limits         map[LimitKind]LimitConfig `mapstructure:"limits" json:"limits"`
	Points         PointRules                `mapstructure:"points" json:"points"`
	// TrendEpsilon 是档案趋势判定的相对阈值
	TrendEpsilon float64 `mapstructure:"trendEpsilon" json:"trendEpsilon"`
}

// SegmentFor 返回指定段位的配置，找不到时回退到缺省段位
func (rs *RuleSet) SegmentFor(name string) SegmentConfig {
	if seg, ok := rs.Segments[name]; ok {
		return seg
	}
	return rs.Segments[rs.DefaultSegment]
}
