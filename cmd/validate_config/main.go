// validate_config 校验游戏配置 YAML 并打印阶段与难度表
//
// 用法：
//
//	go run ./cmd/validate_config [data/config/game.yaml]
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/types"
)

func main() {
	path := config.DefaultGameConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Printf("❌ 字段 %s 无效: %v\n", cfgErr.Field, cfgErr)
		} else {
			fmt.Printf("❌ 读取配置失败: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确\n", path)
	fmt.Printf("✅ 场地 %.0fx%.0f，阶段间隔 %.1fs\n", cfg.Playfield.Width, cfg.Playfield.Height, cfg.InterludeSeconds)

	fmt.Printf("\n阶段表（%d 个阶段）:\n", cfg.PhaseCount())
	warnings := 0
	for n := 1; n <= cfg.PhaseCount(); n++ {
		p, _ := cfg.Phase(n)
		boss := ""
		if p.BossRequired {
			boss = "，需要击败 Boss"
		}
		fmt.Printf("  阶段 %d: 分数 %d → %d（本阶段 %d 分），星星 %d%s\n",
			n, cfg.PhaseMinScore(n), p.ScoreThreshold, p.ScoreThreshold-cfg.PhaseMinScore(n), p.RequiredStars, boss)

		// 星星按分数步长生成，阶段内分数不够时无法集齐
		if p.RequiredStars > 0 {
			if n < cfg.Pickups.StarFromPhase {
				fmt.Printf("  ❌ 阶段 %d 需要星星，但星星从阶段 %d 才开始出现\n", n, cfg.Pickups.StarFromPhase)
				warnings++
			} else if cfg.Pickups.StarScoreStep > 0 {
				available := (p.ScoreThreshold - cfg.PhaseMinScore(n)) / cfg.Pickups.StarScoreStep
				if available < p.RequiredStars {
					fmt.Printf("  ❌ 阶段 %d 最多生成 %d 颗星星，少于要求的 %d 颗\n", n, available, p.RequiredStars)
					warnings++
				}
			}
		}
	}

	fmt.Printf("\n难度表:\n")
	for _, d := range types.AllDifficulties() {
		dc := cfg.Difficulty(d)
		fmt.Printf("  %-6s 生命 %2d，陨石上限", d.Label(), dc.Lives)
		for n := 1; n <= cfg.PhaseCount(); n++ {
			lo, hi := cfg.MeteorSpeedRange(d, n)
			fmt.Printf(" [P%d: %d 个, %.0f-%.0f px/s, 间隔 %.2fs]", n, cfg.MeteorLimit(d, n), lo, hi, cfg.MeteorSpawnInterval(d, n))
		}
		fmt.Println()
	}

	kinds, weights := cfg.WeightedPickups()
	total := 0
	for _, w := range weights {
		total += w
	}
	fmt.Printf("\n随机道具（总权重 %d）:\n", total)
	names := make([]string, 0, len(kinds))
	for i, k := range kinds {
		if total > 0 {
			names = append(names, fmt.Sprintf("  %-13s %5.1f%%", k, 100*float64(weights[i])/float64(total)))
		}
	}
	sort.Strings(names)
	for _, line := range names {
		fmt.Println(line)
	}
	if total == 0 {
		fmt.Printf("  ⚠️  权重全为 0，不会生成随机道具\n")
	}

	if warnings > 0 {
		fmt.Printf("\n❌ 发现 %d 个问题\n", warnings)
		os.Exit(1)
	}
	fmt.Printf("\n✅ 配置检查通过\n")
}
