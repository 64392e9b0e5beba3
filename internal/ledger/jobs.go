package ledger

import (
	"fmt"
	"os"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/utils"
	"gopkg.in/yaml.v3"
)

type breakRuleFile struct {
	Hours        float64 `yaml:"hours"`
	BreakMinutes float64 `yaml:"breakMinutes"`
}

type jobFile struct {
	JobName          string          `yaml:"jobName"`
	BasePay          float64         `yaml:"basePay"`
	BreakCriteria    []breakRuleFile `yaml:"breakCriteria"`
	HasWeekendBonus  bool            `yaml:"hasWeekendBonus"`
	WeekendBonusRate float64         `yaml:"weekendBonusRate"`
}

type jobsFile struct {
	Jobs []jobFile `yaml:"jobs"`
}

// ParseJobs 解析 YAML 格式的工作定义，休息规则保持文件中的顺序
func ParseJobs(data []byte) ([]*domain.Job, error) {
	var file jobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	jobs := make([]*domain.Job, 0, len(file.Jobs))
	for i, j := range file.Jobs {
		job := &domain.Job{
			ID:               int64(i + 1),
			JobName:          j.JobName,
			BasePay:          j.BasePay,
			BreakCriteria:    make([]domain.BreakRule, 0, len(j.BreakCriteria)),
			HasWeekendBonus:  j.HasWeekendBonus,
			WeekendBonusRate: j.WeekendBonusRate,
		}
		for _, rule := range j.BreakCriteria {
			job.BreakCriteria = append(job.BreakCriteria, domain.BreakRule{
				Hours:        rule.Hours,
				BreakMinutes: rule.BreakMinutes,
			})
		}

		if err := utils.ValidateJob(job); err != nil {
			return nil, fmt.Errorf("第 %d 个工作 %q: %w", i+1, j.JobName, err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func LoadJobs(path string) ([]*domain.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseJobs(data)
}

func FindJob(jobs []*domain.Job, name string) (*domain.Job, error) {
	for _, job := range jobs {
		if job.JobName == name {
			return job, nil
		}
	}

	return nil, fmt.Errorf("工作 %q 不存在", name)
}
