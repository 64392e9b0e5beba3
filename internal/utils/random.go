package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPart 根据中文名生成邮箱前缀，例如 王小明 -> wxiaom42
func GenerateEmailLocalPart(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		localPart += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	displayName := GenerateRandomChineseName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Email:        GenerateEmailLocalPart(displayName) + "@" + emailDomainName,
		DisplayName:  displayName,
		PasswordHash: string(passwordHash),
	}, nil
}

var jobNames = []string{"便利店", "居酒屋", "家教", "咖啡店", "仓库分拣", "图书馆助理", "补习班", "超市收银"}

func GenerateRandomJob(userID int64) *domain.Job {
	job := &domain.Job{
		UserID:        userID,
		JobName:       fmt.Sprintf("%s%d", jobNames[rand.Intn(len(jobNames))], rand.Intn(100)),
		BasePay:       float64(1000 + rand.Intn(11)*50),
		BreakCriteria: make([]domain.BreakRule, 0),
	}

	// 大部分工作都有 6 小时 45 分钟、8 小时 60 分钟这样的休息规则
	if rand.Intn(4) != 0 {
		job.BreakCriteria = append(job.BreakCriteria, domain.BreakRule{Hours: 6, BreakMinutes: 45})
		if rand.Intn(2) == 0 {
			job.BreakCriteria = append(job.BreakCriteria, domain.BreakRule{Hours: 8, BreakMinutes: 60})
		}
	}

	if rand.Intn(2) == 0 {
		job.HasWeekendBonus = true
		job.WeekendBonusRate = float64(rand.Intn(7) * 50)
	}

	return job
}

// GenerateRandomShiftInput 在 [from, from+days) 中随机选一天，开始时间按 10 分钟对齐
func GenerateRandomShiftInput(from time.Time, days int) domain.ShiftInput {
	workDate := from.AddDate(0, 0, rand.Intn(days))

	startMinutes := (rand.Intn(18*6) + 6*6) * 10   // 06:00 - 23:50
	durationMinutes := (rand.Intn(9*6) + 2*6) * 10 // 2 - 11 小时
	endMinutes := (startMinutes + durationMinutes) % (24 * 60)

	return domain.ShiftInput{
		WorkDate:  workDate.Format("2006-01-02"),
		StartTime: fmt.Sprintf("%02d:%02d", startMinutes/60, startMinutes%60),
		EndTime:   fmt.Sprintf("%02d:%02d", endMinutes/60, endMinutes%60),
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
