package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
)

func testimonialForm(c *gin.Context) service.TestimonialInput {
	return service.TestimonialInput{
		Name:        c.PostForm("name"),
		RoleCompany: c.PostForm("role_company"),
		Quote:       c.PostForm("quote"),
	}
}

func workExampleForm(c *gin.Context) service.WorkExampleInput {
	return service.WorkExampleInput{
		LinkURL:     c.PostForm("link_url"),
		Description: c.PostForm("description"),
		MetricText:  c.PostForm("metric_text"),
	}
}

func metricForm(c *gin.Context) service.MetricInput {
	return service.MetricInput{
		Label: c.PostForm("label"),
		Value: c.PostForm("value"),
	}
}

// withID 解析 :id 参数并执行 fn，格式错误的 id 按 notFound 处理。
func (a *API) withID(c *gin.Context, notFound error, fn func(id uint) (string, error)) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.finish(c, notFound, "")
		return
	}
	success, err := fn(id)
	a.finish(c, err, success)
}

// CreateTestimonial 在推荐语分区中新增一条推荐语。
func (a *API) CreateTestimonial(c *gin.Context) {
	a.withID(c, service.ErrSectionNotFound, func(id uint) (string, error) {
		_, err := a.items.CreateTestimonial(c.Request.Context(), currentUser(c).ID, id, testimonialForm(c))
		return "Testimonial added.", err
	})
}

// UpdateTestimonial 保存推荐语。
func (a *API) UpdateTestimonial(c *gin.Context) {
	a.withID(c, service.ErrTestimonialNotFound, func(id uint) (string, error) {
		return "Testimonial saved.", a.items.UpdateTestimonial(c.Request.Context(), currentUser(c).ID, id, testimonialForm(c))
	})
}

// DeleteTestimonial 删除推荐语。
func (a *API) DeleteTestimonial(c *gin.Context) {
	a.withID(c, service.ErrTestimonialNotFound, func(id uint) (string, error) {
		return "Testimonial deleted.", a.items.DeleteTestimonial(c.Request.Context(), currentUser(c).ID, id)
	})
}

// UploadAvatar 保存推荐人头像。
func (a *API) UploadAvatar(c *gin.Context) {
	a.withID(c, service.ErrTestimonialNotFound, func(id uint) (string, error) {
		file, err := readUpload(c, "file")
		if err != nil {
			return "", err
		}
		_, err = a.media.UploadTestimonialAvatar(c.Request.Context(), currentUser(c), id, file)
		return "Avatar uploaded.", err
	})
}

// CreateWorkExample 在作品分区中新增一个作品。
func (a *API) CreateWorkExample(c *gin.Context) {
	a.withID(c, service.ErrSectionNotFound, func(id uint) (string, error) {
		_, err := a.items.CreateWorkExample(c.Request.Context(), currentUser(c).ID, id, workExampleForm(c))
		return "Work example added.", err
	})
}

// UpdateWorkExample 保存作品。
func (a *API) UpdateWorkExample(c *gin.Context) {
	a.withID(c, service.ErrWorkExampleNotFound, func(id uint) (string, error) {
		return "Work example saved.", a.items.UpdateWorkExample(c.Request.Context(), currentUser(c).ID, id, workExampleForm(c))
	})
}

// DeleteWorkExample 删除作品。
func (a *API) DeleteWorkExample(c *gin.Context) {
	a.withID(c, service.ErrWorkExampleNotFound, func(id uint) (string, error) {
		return "Work example deleted.", a.items.DeleteWorkExample(c.Request.Context(), currentUser(c).ID, id)
	})
}

// UploadWorkImage 保存作品图片。
func (a *API) UploadWorkImage(c *gin.Context) {
	a.withID(c, service.ErrWorkExampleNotFound, func(id uint) (string, error) {
		file, err := readUpload(c, "file")
		if err != nil {
			return "", err
		}
		_, err = a.media.UploadWorkExampleImage(c.Request.Context(), currentUser(c), id, file)
		return "Work image uploaded.", err
	})
}

// CreateMetric 在指标分区中新增一项指标。
func (a *API) CreateMetric(c *gin.Context) {
	a.withID(c, service.ErrSectionNotFound, func(id uint) (string, error) {
		_, err := a.items.CreateMetric(c.Request.Context(), currentUser(c).ID, id, metricForm(c))
		return "Metric added.", err
	})
}

// UpdateMetric 保存指标。
func (a *API) UpdateMetric(c *gin.Context) {
	a.withID(c, service.ErrMetricNotFound, func(id uint) (string, error) {
		return "Metric saved.", a.items.UpdateMetric(c.Request.Context(), currentUser(c).ID, id, metricForm(c))
	})
}

// DeleteMetric 删除指标。
func (a *API) DeleteMetric(c *gin.Context) {
	a.withID(c, service.ErrMetricNotFound, func(id uint) (string, error) {
		return "Metric deleted.", a.items.DeleteMetric(c.Request.Context(), currentUser(c).ID, id)
	})
}
