package routes

import (
	"fmt"

	"beyondborders-server/models"
	"beyondborders-server/storage"
	"beyondborders-server/utils"

	"github.com/kataras/iris/v12"
)

const blogPostsPerPage = 6

// ListBlogPosts returns published posts, newest first, 6 per page.
func ListBlogPosts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}

	var total int64
	storage.DB.Model(&models.BlogPost{}).Where("is_published = ?", true).Count(&total)

	var posts []models.BlogPost
	if err := storage.DB.Preload("Author").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * blogPostsPerPage).
		Limit(blogPostsPerPage).
		Find(&posts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, posts, page, blogPostsPerPage, total)
}

// GetBlogPost looks a post up by slug. Unpublished posts read as not found,
// not forbidden.
func GetBlogPost(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var post models.BlogPost
	if err := storage.DB.Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(&post)
}

type BlogPostInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Image       string `json:"image"` // base64 payload
	IsPublished *bool  `json:"isPublished"`
}

// CreateBlogPost is role-guarded; the slug is derived from the title and
// uniquified with a random suffix when taken.
func CreateBlogPost(ctx iris.Context) {
	authorID := utils.GetUserID(ctx)

	var input BlogPostInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	slug := utils.Slugify(input.Title)
	if slug == "" {
		slug = utils.GenerateShortToken(6)
	}
	var taken int64
	storage.DB.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&taken)
	if taken > 0 {
		slug = fmt.Sprintf("%s-%s", slug, utils.GenerateShortToken(3))
	}

	post := models.BlogPost{
		Title:       input.Title,
		Slug:        slug,
		Content:     input.Content,
		AuthorID:    authorID,
		IsPublished: true,
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if input.Image != "" {
		post.Image = storage.UploadBase64Image(input.Image, fmt.Sprintf("blog_%s", slug))
	}

	if err := storage.DB.Create(&post).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&post)
}

type BlogPostUpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	IsPublished *bool   `json:"isPublished"`
}

// UpdateBlogPost mutates an existing post; the slug is stable across title
// edits so published links keep working.
func UpdateBlogPost(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var post models.BlogPost
	if err := storage.DB.Where("slug = ?", slug).First(&post).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input BlogPostUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if input.Image != nil && *input.Image != "" {
		post.Image = storage.UploadBase64Image(*input.Image, fmt.Sprintf("blog_%s", post.Slug))
	}

	if err := storage.DB.Save(&post).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&post)
}
